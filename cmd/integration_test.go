package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const measurementsCSV = "m,a,x,y,s,z,g\n" +
	"1,10,7,3.0,male,hom,1\n" +
	"2,11,7,4.5,female,het,1\n" +
	"3,10,14,3.5,male,hom,1\n" +
	"4,12,7,2.0,male,hom,0\n" +
	"5,11,14,5.0,female,het,1\n" +
	"6,12,21,2.5,male,hom,0\n" +
	"7,13,3,NaN,female,het,1\n"

// resetFlags clears values and Changed state left behind by earlier runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestCLI_StatsJSON(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "series.csv", measurementsCSV)
	outPath := filepath.Join(home, "out", "view.json")
	runCmd(t, "stats", in, "-o", outPath)

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var view struct {
		ID     string `json:"id"`
		Source string `json:"source"`
		Mutant struct {
			O struct {
				O struct {
					X struct{ Min, Max float64 } `json:"x"`
				} `json:"o"`
				C struct {
					I map[string]int `json:"i"`
				} `json:"c"`
			} `json:"o"`
			F json.RawMessage `json:"f"`
		} `json:"mutant"`
		Wildtype struct {
			F json.RawMessage `json:"f"`
		} `json:"wildtype"`
	}
	if err := json.Unmarshal(b, &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, b)
	}
	if view.ID == "" || view.Source != "series.csv" {
		t.Fatalf("view header = %q %q", view.ID, view.Source)
	}
	// the NaN row at x=3 is dropped, so the axis starts at 7
	if view.Mutant.O.O.X.Min != 7 || view.Mutant.O.O.X.Max != 14 {
		t.Fatalf("mutant x range = %+v", view.Mutant.O.O.X)
	}
	if len(view.Mutant.O.C.I) != 2 {
		t.Fatalf("mutant column index = %v", view.Mutant.O.C.I)
	}
	if string(view.Wildtype.F) != "null" {
		t.Fatalf("wildtype female bundle should be null, got %s", view.Wildtype.F)
	}
}

func TestCLI_StatsYAMLFromConfig(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "series.csv", measurementsCSV)
	runCmd(t, "config", "set", "output_format", "yaml")
	out := runCmd(t, "stats", in)

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out)
	}
	if _, ok := doc["mutant"]; !ok || doc["source"] != "series.csv" {
		t.Fatalf("unexpected yaml view: %v", doc)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected yaml, got json:\n%s", out)
	}
}

func TestCLI_StatsUnknownColumn(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "series.csv", measurementsCSV)
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"stats", in, "--y", "weight"})
	if err := rootCmd.Execute(); err == nil || !strings.Contains(err.Error(), "unknown column") {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

func TestCLI_Summary(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "series.csv", measurementsCSV)
	out := runCmd(t, "summary", in)
	for _, want := range []string{"[DATASET SUMMARY]", "File: series.csv", "[MUTANT]", "[WILDTYPE]", "x=7 (n=2)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_Categorical(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "eyes.csv", "m,a,g,s,z,v\n"+
		"1,1,0,female,hom,A\n"+
		"2,2,0,female,hom,A\n"+
		"3,3,0,female,hom,B\n"+
		"4,4,1,male,het,B\n")
	out := runCmd(t, "categorical", in)
	var view struct {
		Grid [3][3]struct {
			SB struct {
				T int                `json:"t"`
				S map[string]float64 `json:"s"`
			} `json:"sb"`
		} `json:"grid"`
		Columns []struct {
			L string `json:"l"`
		} `json:"columns"`
		Legend []struct {
			C string `json:"c"`
			S int    `json:"s"`
		} `json:"legend"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	sb := view.Grid[1][2].SB
	if sb.T != 3 || sb.S["A"] < 66.66 || sb.S["A"] > 66.67 {
		t.Fatalf("female wildtype = %+v", sb)
	}
	if len(view.Columns) != 4 || view.Columns[3].L != "Wildtype" {
		t.Fatalf("columns = %+v", view.Columns)
	}
	if view.Legend[0].C != "Highlighted specimen" || view.Legend[1].C != "B" {
		t.Fatalf("legend = %+v", view.Legend)
	}

	md := runCmd(t, "categorical", in, "--markdown")
	if !strings.Contains(md, "wildtype: n=3: A 66.67%, B 33.33%") {
		t.Fatalf("markdown grid:\n%s", md)
	}
}

func TestCLI_BatchWritesWithCollisionSuffix(t *testing.T) {
	home := setupHome(t)
	writeInput(t, home, filepath.Join("d1", "run.csv"), measurementsCSV)
	writeInput(t, home, filepath.Join("d2", "run.csv"), measurementsCSV)
	outDir := filepath.Join(home, "summaries")

	out := runCmd(t, "batch", filepath.Join(home, "d*", "run.csv"), "--out-dir", outDir)
	if !strings.Contains(out, "[1/2] Processing run.csv") || !strings.Contains(out, "[2/2] Processing run.csv") {
		t.Fatalf("missing progress output:\n%s", out)
	}
	for _, name := range []string{"run.summary.md", "run__2.summary.md"} {
		b, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !strings.Contains(string(b), "[DATASET SUMMARY]") {
			t.Fatalf("%s is not a summary:\n%s", name, b)
		}
	}

	quiet := runCmd(t, "batch", filepath.Join(home, "d1", "run.csv"), "--out-dir", outDir, "--quiet", "--format", "json")
	if quiet != "" {
		t.Fatalf("quiet batch should print nothing, got:\n%s", quiet)
	}
	if _, err := os.Stat(filepath.Join(outDir, "run.stats.json")); err != nil {
		t.Fatalf("json summary missing: %v", err)
	}
}

func TestCLI_ConfigShowAndVersion(t *testing.T) {
	setupHome(t)
	runCmd(t, "config", "set", "x_column", "d")
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "x_column: d") || !strings.Contains(out, "lights_out_hour: 19") || !strings.Contains(out, "lights_out_zone: UTC") {
		t.Fatalf("config show:\n%s", out)
	}
	if v := runCmd(t, "version"); !strings.HasPrefix(v, "phenoqc ") {
		t.Fatalf("version = %q", v)
	}
}
