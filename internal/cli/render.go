package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	tterrors "github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/graph"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		cf         cacheFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json | layout.json]",
		Short: "Render a tree layout to SVG, PNG, PDF or JSON",
		Long: `Render a tree layout to SVG, PNG, PDF or JSON.

The input is either a layout.json file (produced by 'layout') or a graph.json
file. A graph needs --root and is laid out first; a layout is rendered as is.

PNG and PDF output need rsvg-convert (librsvg) on the PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				opts.Formats = pipeline.ParseFormats(formatsStr)
			}
			c.applyConfig(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw vertex labels")
	layoutFlags(cmd.Flags(), &opts)
	cf.register(cmd.Flags())

	return cmd
}

// runRender loads a layout (or computes one from a graph) and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	layout, err := graph.ReadLayoutFile(input)
	switch {
	case err == nil:
		c.Logger.Debug("rendering stored layout", "root", layout.Root, "nodes", len(layout.Nodes))
	case errors.Is(err, graph.ErrMissingRoot):
		// Not a layout; treat it as a graph.
		if opts.Root == "" {
			return fmt.Errorf("%s is a graph: --root is required", input)
		}
		g, err := c.loadGraph(input)
		if err != nil {
			return err
		}
		if layout, _, err = c.computeLayout(ctx, runner, g, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("load %s: %w", input, err)
	}

	var (
		artifacts map[string][]byte
		cacheHit  bool
	)
	err = c.spin(ctx, "Rendering...", "Render failed", func() error {
		var err error
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats: layoutStats{
			placed:    len(layout.Nodes),
			depth:     layout.Depth,
			discarded: layout.Discarded,
			cached:    cacheHit,
		},
	})
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     layoutStats
}

// writeArtifacts writes one file per format and reports them.
func writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		formats = slices.Sorted(maps.Keys(p.artifacts))
	}

	var written []string
	for _, format := range formats {
		path := outputPath(p.output, p.input, format, len(formats) > 1)
		if err := tterrors.ValidatePath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.stats)
	return nil
}

// outputPath picks the file for one format. A single format goes to output
// as given; several formats share output (minus a format extension) as
// their base path. Without output the base is the input path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath strips a known format extension from output, or the extension of
// input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(trimExt(input), ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
