// Package style maps hierarchy levels to node appearance.
//
// [ForLevel] is a pure function: the same level always yields the same
// [Style], and nothing here depends on layout state. Colours cycle through
// an eight-entry palette; the root additionally gets a larger, bolder label.
package style

// Colors is one palette entry.
type Colors struct {
	Fill   string `json:"fill"`
	Border string `json:"border"`
}

// Palette holds the fill and border colour of each level, cycled by
// level modulo its length.
var Palette = [...]Colors{
	{Fill: "#7138F5", Border: "#520DF2"}, // violet
	{Fill: "#0B64F4", Border: "#0952C8"}, // blue
	{Fill: "#0D9668", Border: "#096C4B"}, // green
	{Fill: "#EB1414", Border: "#C01111"}, // red
	{Fill: "#C98208", Border: "#9D6607"}, // amber
	{Fill: "#75A300", Border: "#547500"}, // lime
	{Fill: "#E7187F", Border: "#BD1469"}, // pink
	{Fill: "#525252", Border: "#424242"}, // grey
}

// TextColor is the label colour on every palette fill.
const TextColor = "#FFFFFF"

// Style describes how a node is drawn.
type Style struct {
	Fill         string  `json:"fill"`
	Border       string  `json:"border"`
	Text         string  `json:"text"`
	FontSize     float64 `json:"font_size"`
	FontWeight   int     `json:"font_weight"`
	MinWidth     float64 `json:"min_width"`
	BorderWidth  float64 `json:"border_width"`
	BorderRadius float64 `json:"border_radius"`
	PaddingX     float64 `json:"padding_x"`
	PaddingY     float64 `json:"padding_y"`
}

// ForLevel returns the style of a node at the given hierarchy level.
// Negative levels are treated as 0.
func ForLevel(level int) Style {
	if level < 0 {
		level = 0
	}
	c := Palette[level%len(Palette)]
	s := Style{
		Fill:         c.Fill,
		Border:       c.Border,
		Text:         TextColor,
		FontSize:     15,
		FontWeight:   600,
		MinWidth:     100,
		BorderWidth:  2,
		BorderRadius: 8,
		PaddingX:     20,
		PaddingY:     12,
	}
	if level == 0 {
		s.FontSize = 16
		s.FontWeight = 700
		s.MinWidth = 120
	}
	return s
}

// EstimateSize approximates the rendered box of a label without a font
// engine: average glyph width of 0.6em plus padding, clamped to MinWidth.
// It stands in for measurement when there is no browser to measure nodes.
func (s Style) EstimateSize(label string) (w, h float64) {
	n := 0
	for range label {
		n++
	}
	w = float64(n)*s.FontSize*0.6 + 2*s.PaddingX + 2*s.BorderWidth
	if w < s.MinWidth {
		w = s.MinWidth
	}
	h = s.FontSize*1.4 + 2*s.PaddingY + 2*s.BorderWidth
	return w, h
}
