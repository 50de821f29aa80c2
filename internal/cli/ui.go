package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mindtower/pkg/diagram"
	"github.com/matzehuels/mindtower/pkg/game"
	"github.com/matzehuels/mindtower/pkg/score"
	"github.com/matzehuels/mindtower/pkg/style"
)

// uiOut receives status lines. Documents written with "-o -" go to the
// command output instead, so the two never mix.
var uiOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(uiOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints graph statistics on a single line.
func printStats(nodeCount, edgeCount int, engine string) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}
	if engine != "" {
		parts = append(parts, engine)
	}
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(uiOut)
}

// =============================================================================
// Tables
// =============================================================================

// newTable returns a rounded table with the standard header style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// printAnchors prints the drawable edges of a diagram.
func printAnchors(edges []diagram.RenderEdge, total int) {
	t := newTable("Edge", "Source", "Side", "Target", "Side")
	for _, e := range edges {
		a := e.Anchors
		t.Row(
			e.Edge.Source+" → "+e.Edge.Target,
			fmt.Sprintf("(%.1f, %.1f)", a.Source.X, a.Source.Y), a.SourceSide.String(),
			fmt.Sprintf("(%.1f, %.1f)", a.Target.X, a.Target.Y), a.TargetSide.String(),
		)
	}
	fmt.Fprintln(uiOut, t.Render())
	if skipped := total - len(edges); skipped > 0 {
		printWarning("%d edge(s) skipped: endpoint not placed or not measured", skipped)
	}
}

// printReport prints a score breakdown.
func printReport(r score.Report) {
	scoreStyle := StyleSuccess
	switch {
	case r.Score < 50:
		scoreStyle = lipgloss.NewStyle().Foreground(colorRed)
	case r.Score < 100:
		scoreStyle = StyleWarning
	}

	fmt.Fprintln(uiOut, StyleTitle.Render("Score")+" "+scoreStyle.Bold(true).Render(strconv.Itoa(r.Score)+"%"))
	printKeyValue("correct", fmt.Sprintf("%d of %d", r.Correct, r.Total))
	for _, p := range r.Missing {
		printDetail("missing %s - %s", p.Lo, p.Hi)
	}
	for _, p := range r.Extra {
		printDetail("extra   %s - %s", p.Lo, p.Hi)
	}
}

// printSessions prints game sessions as a table.
func printSessions(sessions []*game.Session) {
	t := newTable("Session", "Mind map", "Score", "Time", "Created")
	for _, s := range sessions {
		scoreCell, timeCell := "-", "-"
		if s.Completed {
			scoreCell = strconv.Itoa(s.Score) + "%"
			timeCell = s.Elapsed().String()
		}
		t.Row(s.ID, s.MindMapID, scoreCell, timeCell, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(uiOut, t.Render())
}

// =============================================================================
// Palette
// =============================================================================

// swatch renders a sample node box in the style of a level.
func swatch(level int) string {
	s := style.ForLevel(level)
	box := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Text)).
		Background(lipgloss.Color(s.Fill)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.Border)).
		Padding(0, 2)
	if s.FontWeight >= 700 {
		box = box.Bold(true)
	}
	return box.Render(fmt.Sprintf("level %d", level))
}
