package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/observability"
	"github.com/matzehuels/mindtower/pkg/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService(t *testing.T) (*Service, *store.MemoryRepository) {
	t.Helper()
	repo := store.NewMemoryRepository()
	ctx := context.Background()
	maps := []*graph.MindMap{
		{
			ID:    "cell",
			Title: "Cell",
			Nodes: []graph.Node{
				{ID: "A", Label: "Cell", Level: 0},
				{ID: "B", Label: "Nucleus", Level: 1},
				{ID: "C", Label: "Membrane", Level: 1},
			},
			Edges: []graph.Edge{
				{Source: "A", Target: "B"},
				{Source: "A", Target: "C"},
				{Source: "B", Target: "C"},
			},
		},
		{
			ID:     "private",
			UserID: "bob",
			Title:  "Bob's map",
			Nodes:  []graph.Node{{ID: "x", Level: 0}},
		},
	}
	for _, m := range maps {
		if err := repo.Put(ctx, m); err != nil {
			t.Fatalf("seed %s: %v", m.ID, err)
		}
	}

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := 0
	svc := NewService(NewMemoryStore(), repo,
		WithClock(clock.now),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("s%d", n) }),
	)
	return svc, repo
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "alice", "cell")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if sess.ID != "s1" || sess.UserID != "alice" || sess.MindMapID != "cell" || sess.Completed {
		t.Errorf("Create() = %+v", sess)
	}

	tests := []struct {
		name, user, mapID string
		code              errors.Code
	}{
		{"missing map", "alice", "nope", errors.ErrCodeMindMapNotFound},
		{"foreign map", "alice", "private", errors.ErrCodeMindMapNotFound},
		{"empty user", "", "cell", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.user, tt.mapID); !errors.Is(err, tt.code) {
				t.Errorf("Create() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := svc.Create(ctx, "bob", "private"); err != nil {
		t.Errorf("Create() on own map error: %v", err)
	}
}

func TestService_Complete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess, _ := svc.Create(ctx, "alice", "cell")

	submitted := []graph.Edge{
		{Source: "B", Target: "A"},
		{Source: "C", Target: "B"},
	}
	done, report, err := svc.Complete(ctx, sess.ID, "alice", submitted, 42)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if done.Score != 67 || report.Score != 67 || report.Correct != 2 || report.Total != 3 {
		t.Errorf("Complete() score = %d, report = %+v; want 67", done.Score, report)
	}
	if !done.Completed || done.CompletedAt == nil || done.Elapsed() != 42*time.Second {
		t.Errorf("Complete() did not close session: %+v", done)
	}

	stored, err := svc.Get(ctx, sess.ID, "alice")
	if err != nil || stored.Score != 67 || !stored.Completed {
		t.Errorf("Get() after Complete = %+v, %v", stored, err)
	}

	if _, _, err := svc.Complete(ctx, sess.ID, "alice", submitted, 1); !errors.Is(err, errors.ErrCodeSessionCompleted) {
		t.Errorf("second Complete() error = %v, want SESSION_COMPLETED", err)
	}
}

func TestService_CompleteErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess, _ := svc.Create(ctx, "alice", "cell")

	tests := []struct {
		name, id, user string
		elapsed        int
		code           errors.Code
	}{
		{"negative elapsed", sess.ID, "alice", -1, errors.ErrCodeInvalidInput},
		{"unknown session", "nope", "alice", 1, errors.ErrCodeSessionNotFound},
		{"other player", sess.ID, "mallory", 1, errors.ErrCodeSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Complete(ctx, tt.id, tt.user, nil, tt.elapsed); !errors.Is(err, tt.code) {
				t.Errorf("Complete() error = %v, want %s", err, tt.code)
			}
		})
	}

	got, _ := svc.Get(ctx, sess.ID, "alice")
	if got.Completed {
		t.Error("failed Complete() closed the session")
	}
}

func TestService_List(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		svc.Create(ctx, "alice", "cell")
	}
	svc.Create(ctx, "bob", "private")
	svc.Create(ctx, "bob", "cell")

	got, err := svc.List(ctx, "alice", "", 2)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s3" || got[1].ID != "s2" {
		t.Errorf("List(alice, 2) = %v, want [s3 s2]", ids(got))
	}

	got, _ = svc.List(ctx, "bob", "cell", 0)
	if len(got) != 1 || got[0].ID != "s5" {
		t.Errorf("List(bob, cell) = %v, want [s5]", ids(got))
	}
}

func TestService_Board(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess, _ := svc.Create(ctx, "alice", "cell")

	m, err := svc.Board(ctx, sess.ID, "alice")
	if err != nil {
		t.Fatalf("Board() error: %v", err)
	}
	if len(m.Nodes) != 3 || len(m.Edges) != 0 {
		t.Errorf("Board() = %d nodes, %d edges; want 3, 0", len(m.Nodes), len(m.Edges))
	}
}

type recordingGameHooks struct {
	observability.NoopGameHooks
	created []string
	scores  []int
}

func (h *recordingGameHooks) OnSessionCreated(_ context.Context, id, _ string) {
	h.created = append(h.created, id)
}

func (h *recordingGameHooks) OnSessionScored(_ context.Context, _ string, score int, _ time.Duration) {
	h.scores = append(h.scores, score)
}

func TestService_Hooks(t *testing.T) {
	hooks := &recordingGameHooks{}
	observability.SetGameHooks(hooks)
	t.Cleanup(observability.Reset)

	svc, _ := newTestService(t)
	ctx := context.Background()
	sess, _ := svc.Create(ctx, "alice", "cell")
	svc.Complete(ctx, sess.ID, "alice", nil, 3)

	if len(hooks.created) != 1 || hooks.created[0] != "s1" {
		t.Errorf("OnSessionCreated calls = %v", hooks.created)
	}
	if len(hooks.scores) != 1 || hooks.scores[0] != 0 {
		t.Errorf("OnSessionScored calls = %v, want [0]", hooks.scores)
	}
}

func ids(sessions []*Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}

func TestBoardSeed(t *testing.T) {
	if BoardSeed("s1") != BoardSeed("s1") {
		t.Error("BoardSeed is not deterministic")
	}
	if BoardSeed("s1") == BoardSeed("s2") {
		t.Error("BoardSeed(s1) == BoardSeed(s2)")
	}
}
