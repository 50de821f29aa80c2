package cli

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/force"
)

func watchGraph(t *testing.T) graph.Graph {
	t.Helper()
	g, err := graph.UnmarshalGraph([]byte(cellGraph))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// newTestModel never ticks on its own: frames only sync the initial
// positions, which keeps the assertions deterministic.
func newTestModel(t *testing.T) watchModel {
	t.Helper()
	m := newWatchModel(watchGraph(t), force.DefaultConfig(), time.Hour)
	t.Cleanup(m.ctl.StopForce)
	return m
}

func update(t *testing.T, m watchModel, msg tea.Msg) (watchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(watchModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return wm, cmd
}

func TestWatchModel_Frames(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init should schedule the first frame")
	}

	var cmd tea.Cmd
	for i := 0; i < 5; i++ {
		m, cmd = update(t, m, frameMsg(time.Now()))
		if cmd == nil {
			t.Fatal("frame should schedule the next frame")
		}
	}
	if m.ticks != 5 {
		t.Errorf("ticks = %d, want 5", m.ticks)
	}
	for _, n := range m.ctl.Nodes() {
		if n.Position == nil {
			t.Errorf("node %s has no position after a frame", n.ID)
		}
	}
	if !m.ctl.ForceActive() {
		t.Error("simulation should still be running")
	}
}

func TestWatchModel_Keys(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, frameMsg(time.Now()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selectedID() != "B" {
		t.Fatalf("selected = %q after tab, want B", m.selectedID())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selectedID() != "C" {
		t.Fatalf("selected = %q after two shift+tab, want C", m.selectedID())
	}

	before := *m.ctl.Nodes()[m.selected].Position
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	after := *m.ctl.Nodes()[m.selected].Position
	if !m.dragging || after.X != before.X+dragStep || after.Y != before.Y {
		t.Errorf("drag right moved %v to %v (dragging %v)", before, after, m.dragging)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.dragging {
		t.Error("space should release the node")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if m.ctl.ForceActive() {
		t.Error("radial arrangement should stop the simulation")
	}
	root := m.ctl.Nodes()[0]
	if c := root.Center(); math.Abs(c.X-600) > 1e-9 || math.Abs(c.Y-500) > 1e-9 {
		t.Errorf("root centre = %v, want (600, 500)", c)
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestWatchModel_View(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, frameMsg(time.Now()))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	view := m.View()
	for _, label := range []string{"[Cell]", "[Nucleus]", "[Membrane]", "frame 1", "settled"} {
		if !strings.Contains(view, label) {
			t.Errorf("view is missing %q", label)
		}
	}
}

func TestDrawCanvas(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Label: "a", Position: &graph.Point{X: 0, Y: 0}},
		{ID: "b", Label: "b", Position: &graph.Point{X: 100, Y: 0}},
		{ID: "c", Label: "c"},
	}
	edges := []graph.Edge{{Source: "a", Target: "b"}, {Source: "a", Target: "c"}}

	out := drawCanvas(nodes, edges, 21, 3, "")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(out, "[a]") || !strings.Contains(out, "[b]") || strings.Contains(out, "[c]") {
		t.Errorf("canvas labels wrong:\n%s", out)
	}
	if !strings.Contains(out, "·") {
		t.Errorf("canvas has no edge dots:\n%s", out)
	}

	if got := drawCanvas(nil, nil, 5, 2, ""); strings.Count(got, "\n") != 1 {
		t.Errorf("empty canvas = %q, want 2 lines", got)
	}
	if got := drawCanvas(nodes, edges, 0, 0, ""); got != "" {
		t.Errorf("zero canvas = %q, want empty", got)
	}
}
