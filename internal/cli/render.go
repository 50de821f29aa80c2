package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/pipeline"
)

// renderFlags control output formats and styling.
type renderFlags struct {
	formats    string
	output     string
	graphviz   bool
	directed   bool
	background string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&f.graphviz, "graphviz", false, "render SVG through graphviz instead of the native renderer")
	cmd.Flags().BoolVar(&f.directed, "directed", false, "draw arrowheads on edges (graphviz output)")
	cmd.Flags().StringVar(&f.background, "background", "", "background colour (default from config)")
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if len(opts.Formats) > 1 && f.output == stdinPath {
		return fmt.Errorf("stdout output needs a single format, got %d", len(opts.Formats))
	}
	opts.Graphviz = f.graphviz
	opts.Directed = f.directed
	opts.Background = f.background
	return nil
}

// renderCommand creates the render command: layout and render in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Lay out and render a mind map",
		Long: `Lay out and render a mind map.

Render is a shortcut for 'layout' followed by 'visualize'. Nodes are drawn as
rounded boxes coloured by hierarchy level; edges are curves floating between
the closest sides of their boxes.

PNG output and --graphviz SVG go through graphviz with every node pinned at
its computed position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			if err := lf.apply(&opts); err != nil {
				return err
			}
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, rf.output)
		},
	}

	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

// runRender loads the graph, executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	g, err := c.readGraph(input)
	if err != nil {
		return err
	}

	st := startStatus(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	result, err := c.newRunner().Execute(ctx, g, opts)
	if err != nil {
		st.fail("Render failed")
		return err
	}
	st.stop()
	c.Logger.Debug("pipeline finished", "stats", result.Stats.String())

	return c.writeArtifacts(result.Artifacts, output, input, opts.Formats)
}

// visualizeCommand creates the visualize command for rendering a computed layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it without moving any node. Use it to re-render a layout with other
formats or styling, or after editing positions by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, rf.output)
		},
	}

	rf.register(cmd)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	var (
		l   graph.Layout
		err error
	)
	if input == stdinPath {
		var data []byte
		if data, err = io.ReadAll(c.in); err == nil {
			l, err = graph.UnmarshalLayout(data)
		}
	} else {
		l, err = graph.ReadLayoutFile(input)
	}
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	artifacts, err := c.newRunner().Render(ctx, l, opts)
	if err != nil {
		return err
	}
	return c.writeArtifacts(artifacts, output, input, opts.Formats)
}

// writeArtifacts writes each rendered format to its output path and reports
// the files.
func (c *CLI) writeArtifacts(artifacts map[string][]byte, output, input string, formats []string) error {
	paths := outputPaths(output, input, formats)
	names := make([]string, 0, len(paths))
	for f := range paths {
		names = append(names, f)
	}
	sort.Strings(names)

	for _, f := range names {
		data, ok := artifacts[f]
		if !ok {
			return fmt.Errorf("renderer produced no %s output", f)
		}
		if err := c.writeOutput(paths[f], data); err != nil {
			return err
		}
		c.Logger.Debugf("Generated %s: %d bytes", f, len(data))
	}
	if output == stdinPath {
		return nil
	}

	printSuccess("Rendered %d file(s)", len(names))
	for _, f := range names {
		printFile(paths[f])
	}
	return nil
}
