package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	core "github.com/matzehuels/tidytree/pkg/core/graph"
	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/graph"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		graphOut string
		cf       cacheFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json] --root ID",
		Short: "Compute a tidy tree layout for a graph",
		Long: `Compute a tidy tree layout for a graph.

The layout command reads a graph.json file, extracts the tree reachable from
--root and writes the placed nodes to a layout.json file. Vertices that are
not reachable from the root are left out. Edges that would close a cycle are
dropped and counted.

The layout can be rendered with 'render'. Use --graph-out to also write the
input graph with the new positions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, graphOut, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&graphOut, "graph-out", "", "also write the relocated graph to this file")
	layoutFlags(cmd.Flags(), &opts)
	cf.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output, graphOut string, cf cacheFlags) error {
	g, err := c.loadGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	layout, cacheHit, err := c.computeLayout(ctx, runner, g, opts)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = trimExt(input) + ".layout.json"
	}
	if err := errors.ValidatePath(outputPath); err != nil {
		return err
	}
	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	if graphOut != "" {
		if err := errors.ValidatePath(graphOut); err != nil {
			return err
		}
		if err := graph.WriteGraphFile(g, graphOut); err != nil {
			return fmt.Errorf("write graph %s: %w", graphOut, err)
		}
		printFile(graphOut)
	}
	printStats(layoutStats{
		placed:    len(layout.Nodes),
		depth:     layout.Depth,
		discarded: layout.Discarded,
		cached:    cacheHit,
	})
	if unreached := g.NodeCount() - len(layout.Nodes); unreached > 0 {
		printWarning("%d vertices are not reachable from %q and were not placed", unreached, opts.Root)
	}
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// loadGraph reads a graph file.
func (c *CLI) loadGraph(path string) (*core.Graph, error) {
	prog := newProgress(c.Logger)
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	prog.done("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "directed", g.Directed())
	return g, nil
}

// computeLayout runs the layout stage behind a spinner.
func (c *CLI) computeLayout(ctx context.Context, runner *pipeline.Runner, g *core.Graph, opts pipeline.Options) (graph.Layout, bool, error) {
	var (
		layout   graph.Layout
		cacheHit bool
	)
	err := c.spin(ctx, fmt.Sprintf("Laying out tree from %s...", opts.Root), "Layout failed", func() error {
		var err error
		layout, cacheHit, err = runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
		return err
	})
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return graph.Layout{}, false, ctx.Err()
	}
	return layout, cacheHit, nil
}

// trimExt strips the extension from path.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
