package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/style"
)

// Format is a Graphviz output format supported by RenderDOT.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// pointsPerInch converts pixel sizes to the inches Graphviz expects for
// node width and height.
const pointsPerInch = 72.0

// DOTOptions configures ToDOT.
type DOTOptions struct {
	Background string // graph bgcolor; empty for transparent
	FontFamily string // node fontname; empty for the Graphviz default
	Directed   bool   // draw arrowheads
}

// ToDOT exports g as a neato graph. Positioned nodes are pinned at their
// centre (y flipped, Graphviz grows upward) so the layout survives the
// round-trip; unpositioned nodes are left to neato.
func ToDOT(g graph.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  graph [layout=neato, inputscale=72, splines=curved, outputorder=edgesfirst")
	if opts.Background != "" {
		fmt.Fprintf(&buf, ", bgcolor=%q", opts.Background)
	}
	buf.WriteString("];\n")

	buf.WriteString(`  node [shape=box, style="rounded,filled", fixedsize=true, penwidth=2`)
	if opts.FontFamily != "" {
		fmt.Fprintf(&buf, ", fontname=%q", opts.FontFamily)
	}
	buf.WriteString("];\n")

	arrow := "none"
	if opts.Directed {
		arrow = "normal"
	}
	fmt.Fprintf(&buf, "  edge [arrowhead=%s, color=%q, penwidth=2];\n", arrow, edgeColor)

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node) []string {
	s := style.ForLevel(n.Level)
	w, h := n.Width, n.Height
	if !n.Measured() {
		w, h = s.EstimateSize(n.DisplayLabel())
	}
	attrs := []string{
		fmt.Sprintf("label=%q", n.DisplayLabel()),
		fmt.Sprintf("width=%.3f", w/pointsPerInch),
		fmt.Sprintf("height=%.3f", h/pointsPerInch),
		fmt.Sprintf("fillcolor=%q", s.Fill),
		fmt.Sprintf("color=%q", s.Border),
		fmt.Sprintf("fontcolor=%q", s.Text),
		fmt.Sprintf("fontsize=%.0f", s.FontSize),
	}
	if n.Position != nil {
		c := graph.Point{X: n.Position.X + w/2, Y: n.Position.Y + h/2}
		attrs = append(attrs, fmt.Sprintf(`pos="%.2f,%.2f!"`, c.X, -c.Y))
	}
	return attrs
}

// RenderDOT lays out and renders a DOT document with the in-process
// Graphviz engine. SVG output gets a zero-origin viewBox.
func RenderDOT(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graphviz format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose viewBox
// starts at the origin and whose pixel size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
