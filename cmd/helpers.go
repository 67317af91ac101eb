package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/phenoqc/internal/analysis"
	"github.com/KaramelBytes/phenoqc/internal/measurement"
	"github.com/KaramelBytes/phenoqc/internal/parser"
	"github.com/KaramelBytes/phenoqc/internal/utils"
)

// columnFlags are shared by every command that runs the pipeline.
type columnFlags struct {
	key, x, y, animal, measurement string
	lightsOut                      bool
}

func (f *columnFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "key", "", "series grouping column (default from config)")
	cmd.Flags().StringVar(&f.x, "x", "", "independent variable column: x or d (default from config)")
	cmd.Flags().StringVar(&f.y, "y", "", "measured value column (default from config)")
	cmd.Flags().StringVar(&f.animal, "animal", "", "animal id column (default from config)")
	cmd.Flags().StringVar(&f.measurement, "measurement", "", "measurement id column (default from config)")
	cmd.Flags().BoolVar(&f.lightsOut, "lights-out", false, "express date increments as hours since lights-out")
}

// options merges configured columns with the flags that were set.
func (f *columnFlags) options(cmd *cobra.Command) analysis.Options {
	c := config()
	opt := analysis.DefaultOptions()
	opt.Columns = c.Columns()
	opt.Logger = log
	if c.Precision > 0 {
		opt.Precision = c.Precision
	}
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("key", &opt.Columns.Key, f.key)
	set("x", &opt.Columns.X, f.x)
	set("y", &opt.Columns.Y, f.y)
	set("animal", &opt.Columns.Animal, f.animal)
	set("measurement", &opt.Columns.Measurement, f.measurement)
	return opt
}

func loadMeasurements(path string) ([]measurement.Measurement, error) {
	data, err := parser.LoadMeasurements(path, log.WithField("file", filepath.Base(path)))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return data, nil
}

// buildView loads path and prepares its view.
func (f *columnFlags) buildView(cmd *cobra.Command, path string) (*analysis.View, error) {
	data, err := loadMeasurements(path)
	if err != nil {
		return nil, err
	}
	if f.lightsOut {
		c := config()
		loc, err := c.Location()
		if err != nil {
			return nil, err
		}
		data = analysis.SinceLightsOut(data, c.LightsOutHour, loc)
	}
	v, err := analysis.BuildView(filepath.Base(path), data, f.options(cmd))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// encode renders v as json or yaml.
func encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use json|yaml)", format)
	}
}

func outputFormat(cmd *cobra.Command, flag string) string {
	if cmd.Flags().Changed("format") || config().OutputFormat == "" {
		return flag
	}
	return config().OutputFormat
}

// emit writes data to path atomically, or to the command output when path
// is empty.
func emit(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", path)
	return nil
}

// expandInputs resolves glob patterns and literal paths, dropping duplicates.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// uniquePath returns dir/base+ext, or the first free dir/base__N+ext.
func uniquePath(dir, base, ext string, quiet bool, w io.Writer) string {
	out := filepath.Join(dir, base+ext)
	if _, err := os.Stat(out); err != nil {
		return out
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, ext))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			if !quiet {
				fmt.Fprintf(w, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(cand))
			}
			return cand
		}
	}
}
