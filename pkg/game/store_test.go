package game

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stores returns every backend that can run in this environment. Redis and
// MongoDB are used only when MINDTOWER_TEST_REDIS / MINDTOWER_TEST_MONGO
// point at a server.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	file, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	out := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   file,
	}
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	if addr := os.Getenv("MINDTOWER_TEST_REDIS"); addr != "" {
		rs, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "mindtower_test:" + suffix + ":"})
		if err != nil {
			t.Fatalf("NewRedisStore() error: %v", err)
		}
		t.Cleanup(func() {
			keys, _ := rs.client.Keys(ctx, rs.prefix+"*").Result()
			if len(keys) > 0 {
				rs.client.Del(ctx, keys...)
			}
			rs.Close()
		})
		out["redis"] = rs
	}

	if uri := os.Getenv("MINDTOWER_TEST_MONGO"); uri != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			t.Fatalf("mongo.Connect() error: %v", err)
		}
		db := client.Database("mindtower_test_" + suffix)
		t.Cleanup(func() {
			db.Drop(ctx)
			client.Disconnect(ctx)
		})
		ms, err := NewMongoStore(ctx, db)
		if err != nil {
			t.Fatalf("NewMongoStore() error: %v", err)
		}
		out["mongo"] = ms
	}
	return out
}

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}

			sess := &Session{ID: "s1", UserID: "u", MindMapID: "m", CreatedAt: created}
			if err := s.Put(ctx, sess); err != nil {
				t.Fatalf("Put() error: %v", err)
			}
			got, err := s.Get(ctx, "s1")
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if got.UserID != "u" || got.MindMapID != "m" || got.Completed || !got.CreatedAt.Equal(created) {
				t.Errorf("Get() = %+v", got)
			}
			if got.TimeElapsedSeconds != nil || got.CompletedAt != nil {
				t.Errorf("open session has completion fields: %+v", got)
			}

			elapsed := 30
			done := created.Add(time.Minute)
			got.Score, got.Completed, got.TimeElapsedSeconds, got.CompletedAt = 80, true, &elapsed, &done
			if err := s.Put(ctx, got); err != nil {
				t.Fatalf("Put() update error: %v", err)
			}
			again, _ := s.Get(ctx, "s1")
			if again.Score != 80 || !again.Completed || again.Elapsed() != 30*time.Second || !again.CompletedAt.Equal(done) {
				t.Errorf("Get() after update = %+v", again)
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := []*Session{
		{ID: "a1", UserID: "alice", MindMapID: "m1", CreatedAt: base},
		{ID: "a2", UserID: "alice", MindMapID: "m2", CreatedAt: base.Add(time.Hour)},
		{ID: "a3", UserID: "alice", MindMapID: "m1", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b1", UserID: "bob", MindMapID: "m1", CreatedAt: base.Add(3 * time.Hour)},
	}
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all of alice", Filter{UserID: "alice"}, []string{"a3", "a2", "a1"}},
		{"limited", Filter{UserID: "alice", Limit: 1}, []string{"a3"}},
		{"by map", Filter{UserID: "alice", MindMapID: "m1"}, []string{"a3", "a1"}},
		{"nobody", Filter{UserID: "carol"}, nil},
	}

	for name, s := range stores(t) {
		for _, sess := range seed {
			if err := s.Put(ctx, sess); err != nil {
				t.Fatalf("%s: Put() error: %v", name, err)
			}
		}
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				got, err := s.List(ctx, tt.filter)
				if err != nil {
					t.Fatalf("List() error: %v", err)
				}
				if fmt.Sprint(ids(got)) != fmt.Sprint(tt.want) {
					t.Errorf("List() = %v, want %v", ids(got), tt.want)
				}
			})
		}
	}
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Put(context.Background(), &Session{ID: "../escape"}); err == nil {
		t.Error("Put() accepted a path-like session id")
	}
	if _, err := fs.Get(context.Background(), "../escape"); err != ErrNotFound {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	elapsed := 5
	sess := &Session{ID: "s", UserID: "u", TimeElapsedSeconds: &elapsed}
	s.Put(ctx, sess)
	elapsed = 99

	got, _ := s.Get(ctx, "s")
	if *got.TimeElapsedSeconds != 5 {
		t.Errorf("stored session aliases caller memory: %d", *got.TimeElapsedSeconds)
	}
}
