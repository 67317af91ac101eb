package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/phenoqc/internal/frequency"
	"github.com/KaramelBytes/phenoqc/internal/parser"
)

var (
	catOutput   string
	catFormat   string
	catMarkdown bool
)

// categoricalView is one render of a frequency grid with its legend.
type categoricalView struct {
	ID      string             `json:"id" yaml:"id"`
	Source  string             `json:"source" yaml:"source"`
	Grid    *frequency.Grid    `json:"grid" yaml:"grid"`
	Columns []frequency.Column `json:"columns" yaml:"columns"`
	Legend  []frequency.Entry  `json:"legend" yaml:"legend"`
}

var categoricalCmd = &cobra.Command{
	Use:   "categorical <file>",
	Short: "Build the sex/zygosity frequency grid of a categorical parameter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := parser.LoadCategorical(path, log.WithField("file", filepath.Base(path)))
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		grid := frequency.Build(data)
		if catMarkdown {
			prec := config().PercentPrecision
			return emit(cmd, catOutput, []byte(grid.Markdown(prec)))
		}
		legend := frequency.NewLegend()
		view := categoricalView{
			ID:      uuid.NewString(),
			Source:  filepath.Base(path),
			Grid:    grid,
			Columns: grid.Columns(legend),
		}
		view.Legend = legend.Entries()
		log.WithFields(logrus.Fields{
			"view":       view.ID,
			"records":    len(data),
			"categories": len(view.Legend) - 1,
		}).Debug("frequency grid built")
		b, err := encode(view, outputFormat(cmd, catFormat))
		if err != nil {
			return err
		}
		return emit(cmd, catOutput, b)
	},
}

func init() {
	rootCmd.AddCommand(categoricalCmd)
	categoricalCmd.Flags().StringVarP(&catOutput, "output", "o", "", "optional path to write the grid")
	categoricalCmd.Flags().StringVarP(&catFormat, "format", "f", "json", "output format: json|yaml")
	categoricalCmd.Flags().BoolVar(&catMarkdown, "markdown", false, "print the grid as Markdown")
}
