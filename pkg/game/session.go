// Package game runs the reconnection game: a player is shown a mind map whose
// edges have been removed, redraws them, and is scored against the original.
//
// A [Session] records one play. The [Service] creates sessions for maps the
// player may see, completes them exactly once with a score computed by
// package score, and lists a player's history newest first.
//
// Sessions are kept in a [Store]. Implementations are provided for
// different deployments:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: JSON files, for the CLI
//   - [RedisStore]: Redis, for multi-instance servers, with optional TTL
//   - [MongoStore]: MongoDB, next to the mind map documents
//
// # Usage
//
//	svc := game.NewService(game.NewMemoryStore(), repo)
//	sess, err := svc.Create(ctx, userID, mapID)
//	...
//	sess, report, err := svc.Complete(ctx, sess.ID, userID, edges, 95)
//	fmt.Println(sess.Score, report.Missing)
package game

import (
	"context"
	"time"

	"github.com/matzehuels/mindtower/pkg/errors"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist or belongs to
	// another player.
	ErrNotFound = errors.New(errors.ErrCodeSessionNotFound, "game session not found")

	// ErrCompleted is returned when a session is completed a second time.
	ErrCompleted = errors.New(errors.ErrCodeSessionCompleted, "game session already completed")
)

// DefaultListLimit is the number of sessions List returns when no limit is
// given.
const DefaultListLimit = 50

// Session is one play of the reconnection game.
type Session struct {
	ID                 string     `json:"id" bson:"_id"`
	UserID             string     `json:"user_id" bson:"user_id"`
	MindMapID          string     `json:"mind_map_id" bson:"mind_map_id"`
	Score              int        `json:"score" bson:"score"`
	Completed          bool       `json:"completed" bson:"completed"`
	TimeElapsedSeconds *int       `json:"time_elapsed_seconds" bson:"time_elapsed_seconds,omitempty"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at"`
	CompletedAt        *time.Time `json:"completed_at" bson:"completed_at,omitempty"`
}

// Elapsed returns the recorded play time, or zero for open sessions.
func (s *Session) Elapsed() time.Duration {
	if s.TimeElapsedSeconds == nil {
		return 0
	}
	return time.Duration(*s.TimeElapsedSeconds) * time.Second
}

// Filter selects sessions for List. UserID is required; an empty MindMapID
// matches every map.
type Filter struct {
	UserID    string
	MindMapID string
	Limit     int
}

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

func (f Filter) match(s *Session) bool {
	return s.UserID == f.UserID && (f.MindMapID == "" || s.MindMapID == f.MindMapID)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores a session, replacing any session with the same ID.
	Put(ctx context.Context, s *Session) error

	// List returns the sessions matching f, newest first.
	List(ctx context.Context, f Filter) ([]*Session, error)
}

func cloneSession(s *Session) *Session {
	out := *s
	if s.TimeElapsedSeconds != nil {
		v := *s.TimeElapsedSeconds
		out.TimeElapsedSeconds = &v
	}
	if s.CompletedAt != nil {
		v := *s.CompletedAt
		out.CompletedAt = &v
	}
	return &out
}
