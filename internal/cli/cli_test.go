package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tidytree/pkg/graph"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

const testGraph = `{
  "nodes": [{"id": "r"}, {"id": "a"}, {"id": "b"}, {"id": "lonely"}],
  "edges": [{"from": "r", "to": "a"}, {"from": "r", "to": "b"}]
}`

// setupCLI isolates config and cache directories and writes the test graph.
func setupCLI(t *testing.T) (c *CLI, dir string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	if err := os.WriteFile(filepath.Join(dir, "tree.json"), []byte(testGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(&bytes.Buffer{}, LogInfo), dir
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestLayoutCommand(t *testing.T) {
	c, dir := setupCLI(t)
	out := filepath.Join(dir, "out.layout.json")

	if err := execute(t, c, "layout", filepath.Join(dir, "tree.json"), "--root", "r", "--no-cache", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if l.Root != "r" || len(l.Nodes) != 3 {
		t.Fatalf("layout = root %q, %d nodes; want r, 3", l.Root, len(l.Nodes))
	}
	xs := map[string]float64{}
	for _, n := range l.Nodes {
		xs[n.ID] = n.X
	}
	if xs["r"] != 0 || xs["a"] != -5.5 || xs["b"] != 5.5 {
		t.Errorf("positions = %v", xs)
	}
}

func TestLayoutCommand_DefaultOutput(t *testing.T) {
	c, dir := setupCLI(t)

	if err := execute(t, c, "layout", filepath.Join(dir, "tree.json"), "-r", "r"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tree.layout.json")); err != nil {
		t.Errorf("default output missing: %v", err)
	}
	// Cached by default.
	entries, err := os.ReadDir(filepath.Join(dir, "cache", appName))
	if err != nil || len(entries) == 0 {
		t.Errorf("expected cache entries, got %v (%v)", entries, err)
	}
}

func TestLayoutCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing root flag", []string{"layout", "tree.json"}, "root"},
		{"unknown root", []string{"layout", "tree.json", "-r", "nope", "--no-cache"}, "nope"},
		{"missing file", []string{"layout", "missing.json", "-r", "r", "--no-cache"}, "missing.json"},
		{"bad spacing", []string{"layout", "tree.json", "-r", "r", "--spacing", "-1", "--no-cache"}, "spacing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, dir := setupCLI(t)
			args := append([]string(nil), tt.args...)
			args[1] = filepath.Join(dir, args[1])

			err := execute(t, c, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestRenderCommand_FromGraph(t *testing.T) {
	c, dir := setupCLI(t)
	out := filepath.Join(dir, "pic.json")

	err := execute(t, c, "render", filepath.Join(dir, "tree.json"), "-r", "r", "-f", "json", "-o", out, "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("rendered JSON is not a layout: %v", err)
	}
	if len(l.Nodes) != 3 {
		t.Errorf("rendered %d nodes, want 3", len(l.Nodes))
	}
}

func TestRenderCommand_GraphNeedsRoot(t *testing.T) {
	c, dir := setupCLI(t)

	err := execute(t, c, "render", filepath.Join(dir, "tree.json"), "-f", "json", "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "--root") {
		t.Errorf("err = %v, want --root hint", err)
	}
}

func TestRenderCommand_FromLayout(t *testing.T) {
	c, dir := setupCLI(t)
	layoutPath := filepath.Join(dir, "tree.layout.json")

	if err := execute(t, c, "layout", filepath.Join(dir, "tree.json"), "-r", "r", "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	c2 := New(&bytes.Buffer{}, LogInfo)
	if err := execute(t, c2, "render", layoutPath, "-f", "json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	// tree.layout.json renders next to itself as tree.json, replacing the input graph.
	if _, err := graph.ReadLayoutFile(filepath.Join(dir, "tree.json")); err != nil {
		t.Errorf("expected layout JSON at tree.json: %v", err)
	}
}

func TestApplyConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.config = Config{Layout: LayoutConfig{Spacing: 4, VerticalSpacing: 30, Formats: []string{"svg"}}}

	opts := pipeline.Options{}
	cmd := &cobra.Command{Use: "x"}
	layoutFlags(cmd.Flags(), &opts)
	cmd.Flags().StringSlice("format", nil, "")
	if err := cmd.ParseFlags([]string{"--spacing", "8"}); err != nil {
		t.Fatal(err)
	}

	c.applyConfig(cmd, &opts)

	if opts.Spacing != 8 {
		t.Errorf("Spacing = %v, flag should win", opts.Spacing)
	}
	if opts.VerticalSpacing != 30 {
		t.Errorf("VerticalSpacing = %v, config should fill", opts.VerticalSpacing)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger != c.Logger {
		t.Error("Logger not set")
	}
}

func TestConfigFlag(t *testing.T) {
	c, dir := setupCLI(t)
	cfgPath := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\nbackend = \"bogus\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, c, "--config", cfgPath, "layout", filepath.Join(dir, "tree.json"), "-r", "r")
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("err = %v, want config error", err)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, dir := setupCLI(t)
	if err := execute(t, c, "layout", filepath.Join(dir, "tree.json"), "-r", "r"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	if err := execute(t, New(&bytes.Buffer{}, LogInfo), "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cache", appName))
	if len(entries) != 0 {
		t.Errorf("cache not cleared: %d entries left", len(entries))
	}
}
