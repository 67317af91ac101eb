package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/phenoqc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set phenoqc configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "key_column: %s\n", cfg.KeyColumn)
		fmt.Fprintf(w, "x_column: %s\n", cfg.XColumn)
		fmt.Fprintf(w, "y_column: %s\n", cfg.YColumn)
		fmt.Fprintf(w, "animal_column: %s\n", cfg.AnimalColumn)
		fmt.Fprintf(w, "measurement_column: %s\n", cfg.MeasurementColumn)
		fmt.Fprintf(w, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(w, "percent_precision: %d\n", cfg.PercentPrecision)
		fmt.Fprintf(w, "precision: %d\n", cfg.Precision)
		fmt.Fprintf(w, "lights_out_hour: %d\n", cfg.LightsOutHour)
		fmt.Fprintf(w, "lights_out_zone: %s\n", cfg.LightsOutZone)
		fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
