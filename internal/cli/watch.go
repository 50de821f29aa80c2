package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/diagram"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/force"
	"github.com/matzehuels/mindtower/pkg/style"
)

const (
	// dragStep is how far one arrow key press moves the selected node.
	dragStep = 20.0

	defaultCanvasWidth  = 100
	defaultCanvasHeight = 30
)

// watchCommand runs the force simulation in the terminal.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		fps        int
		fromRadial bool
	)

	cmd := &cobra.Command{
		Use:   "watch [graph.json]",
		Short: "Watch the force layout settle in the terminal",
		Long: `Watch the force layout settle in the terminal.

The simulation ticks on its own goroutine at the frame rate and is drawn as an
ASCII canvas. Select a node with tab, drag it with the arrow keys (the node is
pinned and the simulation reheats, even after it has settled) and release it
with space.

Keys:
  tab / shift+tab   select next / previous node
  arrows, hjkl      drag the selected node
  space             release the selected node
  r                 restart the simulation
  a                 arrange radially (stops the simulation)
  q, esc            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.readGraph(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if fps <= 0 {
				return fmt.Errorf("fps must be > 0, got %d", fps)
			}

			m := newWatchModel(g, cfg.Force, time.Second/time.Duration(fps),
				diagram.WithLogger(c.Logger), diagram.WithContext(cmd.Context()), diagram.WithRadialConfig(cfg.Radial))
			defer m.ctl.StopForce()
			if fromRadial {
				m.ctl.ArrangeRadial()
				m.restart()
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if wm, ok := final.(watchModel); ok {
				c.Logger.Info("simulation finished", "frames", wm.ticks, "nodes", len(wm.ctl.Nodes()))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 60, "frames per second")
	cmd.Flags().BoolVar(&fromRadial, "from-radial", false, "start from the radial layout instead of random positions")

	return cmd
}

// =============================================================================
// watchModel - bubbletea model around a diagram controller
// =============================================================================

type frameMsg time.Time

type watchModel struct {
	ctl      *diagram.Controller
	force    force.Config
	interval time.Duration

	width, height int
	selected      int
	dragging      bool
	ticks         int
}

// newWatchModel starts the simulation on its own goroutine, ticking at the
// frame interval. Each frame copies the latest positions into the canvas.
func newWatchModel(g graph.Graph, cfg force.Config, interval time.Duration, opts ...diagram.Option) watchModel {
	ctl := diagram.New(g, diagram.ModeEdit, opts...)
	ctl.MeasureAll()
	m := watchModel{
		ctl:      ctl,
		force:    cfg,
		interval: interval,
		width:    defaultCanvasWidth,
		height:   defaultCanvasHeight,
	}
	m.restart()
	return m
}

func (m watchModel) restart() {
	m.ctl.RunForce(m.force, m.interval)
}

func (m watchModel) frame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return m.frame()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		// ticks counts frames drawn while the layout moves.
		if m.ctl.Tick() {
			m.ticks++
		}
		return m, m.frame()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		nodes := m.ctl.Nodes()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctl.StopForce()
			return m, tea.Quit
		case "tab":
			m = m.release()
			if len(nodes) > 0 {
				m.selected = (m.selected + 1) % len(nodes)
			}
		case "shift+tab":
			m = m.release()
			if len(nodes) > 0 {
				m.selected = (m.selected - 1 + len(nodes)) % len(nodes)
			}
		case "left", "h":
			m = m.drag(-dragStep, 0)
		case "right", "l":
			m = m.drag(dragStep, 0)
		case "up", "k":
			m = m.drag(0, -dragStep)
		case "down", "j":
			m = m.drag(0, dragStep)
		case " ":
			m = m.release()
		case "r":
			m.dragging = false
			m.ticks = 0
			m.restart()
		case "a":
			m.dragging = false
			m.ctl.ArrangeRadial()
		}
	}
	return m, nil
}

// selectedID returns the ID of the selected node, or "" for an empty diagram.
func (m watchModel) selectedID() string {
	nodes := m.ctl.Nodes()
	if m.selected < 0 || m.selected >= len(nodes) {
		return ""
	}
	return nodes[m.selected].ID
}

func (m watchModel) drag(dx, dy float64) watchModel {
	id := m.selectedID()
	if id == "" {
		return m
	}
	n := m.ctl.Nodes()[m.selected]
	if n.Position == nil {
		return m
	}
	if !m.dragging {
		if err := m.ctl.DragStart(id); err != nil {
			return m
		}
		m.dragging = true
	}
	m.ctl.DragMove(id, n.Position.X+dx, n.Position.Y+dy)
	return m
}

func (m watchModel) release() watchModel {
	if m.dragging {
		m.ctl.DragEnd(m.selectedID())
		m.dragging = false
	}
	return m
}

func (m watchModel) View() string {
	canvasHeight := m.height - 2
	if canvasHeight < 1 {
		canvasHeight = 1
	}
	var b strings.Builder
	b.WriteString(drawCanvas(m.ctl.Nodes(), m.ctl.Edges(), m.width, canvasHeight, m.selectedID()))
	b.WriteString("\n")

	state := "settled"
	if m.ctl.ForceActive() {
		state = "running"
	}
	status := fmt.Sprintf(" frame %d · %s · %s", m.ticks, state, m.selectedID())
	if m.dragging {
		status += " (pinned)"
	}
	b.WriteString(StyleTitle.Render(status))
	b.WriteString(StyleDim.Render("   tab select · arrows drag · space release · r restart · a radial · q quit"))
	return b.String()
}

// =============================================================================
// ASCII canvas
// =============================================================================

// cell is one character of the canvas. level is the node level the rune
// belongs to, -1 for edges and background.
type cell struct {
	r        rune
	level    int
	selected bool
}

// drawCanvas scales the diagram into a width×height character grid. Edges
// are dotted lines between node centres; nodes are their bracketed labels
// coloured by level.
func drawCanvas(nodes []graph.Node, edges []graph.Edge, width, height int, selected string) string {
	if width < 1 || height < 1 {
		return ""
	}
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' ', level: -1}
		}
	}

	project, ok := projection(nodes, width, height)
	if !ok {
		return renderGrid(grid)
	}

	centres := make(map[string][2]int, len(nodes))
	for i := range nodes {
		if nodes[i].Position == nil {
			continue
		}
		x, y := project(nodes[i].Center())
		centres[nodes[i].ID] = [2]int{x, y}
	}

	for _, e := range edges {
		s, ok1 := centres[e.Source]
		t, ok2 := centres[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		steps := max(abs(t[0]-s[0]), abs(t[1]-s[1]))
		for i := 1; i < steps; i++ {
			f := float64(i) / float64(steps)
			x := s[0] + int(math.Round(f*float64(t[0]-s[0])))
			y := s[1] + int(math.Round(f*float64(t[1]-s[1])))
			grid[y][x] = cell{r: '·', level: -1}
		}
	}

	for i := range nodes {
		n := &nodes[i]
		c, ok := centres[n.ID]
		if !ok {
			continue
		}
		label := []rune("[" + n.DisplayLabel() + "]")
		if len(label) > width {
			label = append(label[:width-1], ']')
		}
		x0 := c[0] - len(label)/2
		x0 = min(max(x0, 0), width-len(label))
		for j, r := range label {
			grid[c[1]][x0+j] = cell{r: r, level: n.Level, selected: n.ID == selected}
		}
	}

	return renderGrid(grid)
}

// projection maps diagram coordinates onto the grid, preserving the aspect
// ratio of terminal cells (about twice as tall as wide).
func projection(nodes []graph.Node, width, height int) (func(graph.Point) (int, int), bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range nodes {
		if nodes[i].Position == nil {
			continue
		}
		c := nodes[i].Center()
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	if math.IsInf(minX, 1) {
		return nil, false
	}

	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)
	scale := math.Min(float64(width-1)/spanX, float64(height-1)*2/spanY)
	offX := (float64(width-1) - spanX*scale) / 2
	offY := (float64(height-1) - spanY*scale/2) / 2

	return func(p graph.Point) (int, int) {
		x := int(math.Round(offX + (p.X-minX)*scale))
		y := int(math.Round(offY + (p.Y-minY)*scale/2))
		return min(max(x, 0), width-1), min(max(y, 0), height-1)
	}, true
}

func renderGrid(grid [][]cell) string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var b strings.Builder
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && row[end].level == row[x].level && row[end].selected == row[x].selected {
				end++
			}
			var run strings.Builder
			for _, c := range row[x:end] {
				run.WriteRune(c.r)
			}
			b.WriteString(cellStyle(row[x]).Render(run.String()))
			x = end
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func cellStyle(c cell) lipgloss.Style {
	if c.level < 0 {
		return StyleDim
	}
	s := style.ForLevel(c.level)
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Fill))
	if s.FontWeight >= 700 {
		st = st.Bold(true)
	}
	if c.selected {
		st = st.Reverse(true)
	}
	return st
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
