package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/phenoqc/internal/utils"
)

var (
	batchCols   columnFlags
	batchOutDir string
	batchFormat string
	batchQuiet  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Summarize many measurement files with progress output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		format := strings.ToLower(batchFormat)
		ext := ".summary.md"
		switch format {
		case "markdown", "md":
		case "json", "yaml":
			ext = ".stats." + format
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json|yaml)", batchFormat)
		}
		if batchOutDir != "" {
			if err := utils.EnsureDir(batchOutDir); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !batchQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			v, err := batchCols.buildView(cmd, path)
			if err != nil {
				return err
			}
			var body []byte
			if ext == ".summary.md" {
				body = []byte(v.Markdown())
			} else if body, err = encode(v, format); err != nil {
				return err
			}

			if batchOutDir == "" {
				if !batchQuiet {
					fmt.Fprintln(out, string(body))
				}
				continue
			}
			base := filepath.Base(path)
			safe := strings.TrimSuffix(base, filepath.Ext(base))
			outFile := uniquePath(batchOutDir, safe, ext, batchQuiet, out)
			if err := utils.SafeWriteFile(outFile, body); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !batchQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", filepath.Base(outFile))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCols.register(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "directory to write one summary per input (prints when empty)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "markdown", "summary format: markdown|json|yaml")
	batchCmd.Flags().BoolVar(&batchQuiet, "quiet", false, "suppress progress and non-essential output")
}
