package cmd

import (
	"github.com/spf13/cobra"
)

var (
	sumCols   columnFlags
	sumOutput string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Print a Markdown summary of a measurement file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := sumCols.buildView(cmd, args[0])
		if err != nil {
			return err
		}
		return emit(cmd, sumOutput, []byte(v.Markdown()))
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	sumCols.register(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "optional path to write the summary (Markdown)")
}
