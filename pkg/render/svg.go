package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/mindtower/pkg/geometry"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/style"
)

const edgeColor = "#94A3B8"

const nodeInteractionCSS = `
    .node rect { transition: stroke-width 0.2s ease; }
    .node:hover rect { stroke-width: 4; }
    .edge { transition: stroke 0.2s ease; }`

// Prepare returns a copy of g in which every unmeasured node has the size
// estimated from its label and level style.
func Prepare(g graph.Graph) graph.Graph {
	out := g.Clone()
	for i := range out.Nodes {
		n := &out.Nodes[i]
		if n.Width > 0 && n.Height > 0 {
			continue
		}
		n.Width, n.Height = style.ForLevel(n.Level).EstimateSize(n.DisplayLabel())
	}
	return out
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding    float64
	curvature  float64
	background string
	fontFamily string
}

func WithPadding(p float64) SVGOption   { return func(r *svgRenderer) { r.padding = p } }
func WithCurvature(c float64) SVGOption { return func(r *svgRenderer) { r.curvature = c } }
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// RenderSVG draws g as a standalone SVG document. Nodes without a position
// are skipped, and so are edges that cannot be anchored.
func RenderSVG(g graph.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{
		padding:    40,
		curvature:  geometry.DefaultCurvature,
		fontFamily: "Inter, Helvetica, Arial, sans-serif",
	}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := bounds(g)
	minX -= r.padding
	minY -= r.padding
	w := maxX - minX + r.padding
	h := maxY - minY + r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			minX, minY, w, h, html.EscapeString(r.background))
	}

	r.renderEdges(&buf, g)
	for _, n := range g.Nodes {
		if n.Position != nil {
			r.renderNode(&buf, n)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderEdges(buf *bytes.Buffer, g graph.Graph) {
	ix := graph.NewIndex(&g)
	for _, e := range g.Edges {
		if !ix.Has(e.Source) || !ix.Has(e.Target) {
			continue
		}
		a, ok := geometry.EdgeAnchors(g.Nodes[ix.Pos(e.Source)], g.Nodes[ix.Pos(e.Target)])
		if !ok {
			continue
		}
		fmt.Fprintf(buf, `  <path class="edge" id="edge-%s" d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			html.EscapeString(e.ID), geometry.Curve(a, r.curvature).Path(), edgeColor)
	}
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n graph.Node) {
	s := style.ForLevel(n.Level)
	c := n.Center()
	fmt.Fprintf(buf, `  <g class="node level-%d" id="node-%s">`+"\n", n.Level, html.EscapeString(n.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f" fill="%s" stroke="%s" stroke-width="%.0f"/>`+"\n",
		n.Position.X, n.Position.Y, n.Width, n.Height, s.BorderRadius, s.Fill, s.Border, s.BorderWidth)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.0f" font-weight="%d" fill="%s">%s</text>`+"\n",
		c.X, c.Y, html.EscapeString(r.fontFamily), s.FontSize, s.FontWeight, s.Text, html.EscapeString(n.DisplayLabel()))
	buf.WriteString("  </g>\n")
}

// bounds returns the extent of all positioned node boxes. An empty diagram
// yields a zero box.
func bounds(g graph.Graph) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		if n.Position == nil {
			continue
		}
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+n.Width)
		maxY = math.Max(maxY, n.Position.Y+n.Height)
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}
