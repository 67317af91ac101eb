package cmd

import (
	"github.com/spf13/cobra"
)

var (
	statsCols   columnFlags
	statsOutput string
	statsFormat string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compute the mutant and wildtype statistics bundles of a measurement file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := statsCols.buildView(cmd, args[0])
		if err != nil {
			return err
		}
		b, err := encode(v, outputFormat(cmd, statsFormat))
		if err != nil {
			return err
		}
		return emit(cmd, statsOutput, b)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCols.register(statsCmd)
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "optional path to write the view")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "json", "output format: json|yaml")
}
