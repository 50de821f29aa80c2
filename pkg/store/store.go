// Package store persists mind map documents.
//
// A [Repository] is the graph-loader boundary for stored diagrams: [Put]
// normalizes and validates the document before it is written, so every map a
// layout engine or game session reads back is well-formed.
//
// Three backends are provided:
//   - [MemoryRepository]: in-process map, for tests and the standalone server
//   - [FileRepository]: one JSON document per map in a directory
//   - [MongoRepository]: a MongoDB collection
//
// Wrap any backend with [Instrument] to report reads and writes to the
// observability store hooks.
package store

import (
	"context"
	"sort"
	"time"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Repository stores mind maps by ID.
type Repository interface {
	// Get returns the map with the given ID, or an error with code
	// MIND_MAP_NOT_FOUND.
	Get(ctx context.Context, id string) (*graph.MindMap, error)

	// Put validates and stores m, replacing any map with the same ID.
	// CreatedAt is stamped on first write and UpdatedAt on every write.
	Put(ctx context.Context, m *graph.MindMap) error

	// List returns the maps owned by userID (all maps when empty), newest
	// first, at most limit entries.
	List(ctx context.Context, userID string, limit int) ([]*graph.MindMap, error)
}

// Prepare normalizes m and checks it can be stored. It is applied by every
// backend's Put.
func Prepare(m *graph.MindMap, now time.Time) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidInput, "mind map is nil")
	}
	if err := errors.ValidateID("mind map id", m.ID); err != nil {
		return err
	}
	if err := errors.ValidateTitle(m.Title); err != nil {
		return err
	}
	g := m.Graph()
	g.Normalize()
	if err := g.Validate(); err != nil {
		return err
	}
	m.Nodes, m.Edges = g.Nodes, g.Edges
	if m.Nodes == nil {
		m.Nodes = []graph.Node{}
	}
	if m.Edges == nil {
		m.Edges = []graph.Edge{}
	}

	now = now.UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeMindMapNotFound, "mind map %q not found", id)
}

func clone(m *graph.MindMap) *graph.MindMap {
	out := *m
	g := m.Graph().Clone()
	out.Nodes, out.Edges = g.Nodes, g.Edges
	return &out
}

// newest sorts maps by creation time, newest first, and truncates to limit.
func newest(maps []*graph.MindMap, limit int) []*graph.MindMap {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	sort.SliceStable(maps, func(i, j int) bool {
		return maps[i].CreatedAt.After(maps[j].CreatedAt)
	})
	if len(maps) > limit {
		maps = maps[:limit]
	}
	return maps
}
