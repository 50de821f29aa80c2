package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
	"github.com/matzehuels/mindtower/pkg/pipeline"
)

// layoutFlags are shared by the layout and render commands.
type layoutFlags struct {
	engine    string
	algorithm string
	seed      uint64
	maxTicks  int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.engine, "engine", "e", pipeline.DefaultEngine, "layout engine: radial (default), force")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "radial angular layout: cluster, tree (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for the force layout (default from config)")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "tick limit for the force layout (default from config)")
}

func (f *layoutFlags) apply(opts *pipeline.Options) error {
	if err := pipeline.ValidateEngine(f.engine); err != nil {
		return err
	}
	opts.Engine = f.engine
	opts.Algorithm = radial.Algorithm(f.algorithm)
	opts.Seed = f.seed
	opts.MaxTicks = f.maxTicks
	return nil
}

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a mind map",
		Long: `Compute node positions for a mind map.

The layout command reads a graph.json document (nodes with hierarchy levels
and edges) and places every node. The radial engine puts the root at the
centre and each level on its own ring; the force engine runs the physics
simulation to rest. Unmeasured nodes are sized from their labels first.

The output is a layout.json file that 'visualize' renders to SVG, PNG or DOT.
Use "-" to read from stdin or write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			if err := flags.apply(&opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	g, err := c.readGraph(input)
	if err != nil {
		return err
	}

	st := startStatus(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
	prog := newProgress(c.Logger)
	l, err := c.newRunner().Layout(ctx, g, opts)
	if err != nil {
		st.fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	st.stop()
	prog.done("Laid out %d nodes", len(l.Nodes))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := c.writeOutput(outputPath, data); err != nil {
		return err
	}
	if outputPath == stdinPath {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), l.Engine)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
