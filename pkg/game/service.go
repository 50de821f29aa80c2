package game

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/observability"
	"github.com/matzehuels/mindtower/pkg/score"
)

// MindMaps looks up the maps sessions are played on. store.Repository
// satisfies it.
type MindMaps interface {
	Get(ctx context.Context, id string) (*graph.MindMap, error)
}

// Service manages game sessions.
type Service struct {
	sessions Store
	maps     MindMaps
	logger   *log.Logger
	now      func() time.Time
	newID    func() string

	// mu serializes completion so a session is scored once per process.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for session events.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the random UUID session IDs.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService creates a Service storing sessions in sessions and reading
// maps from maps.
func NewService(sessions Store, maps MindMaps, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		maps:     maps,
		logger:   log.New(io.Discard),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session for userID on the given map. The map must exist
// and be owned by userID or have no owner.
func (s *Service) Create(ctx context.Context, userID, mindMapID string) (*Session, error) {
	if err := errors.ValidateID("user id", userID); err != nil {
		return nil, err
	}
	if _, err := s.mindMap(ctx, userID, mindMapID); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        s.newID(),
		UserID:    userID,
		MindMapID: mindMapID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	observability.Game().OnSessionCreated(ctx, sess.ID, mindMapID)
	s.logger.Debug("game session created", "session", sess.ID, "mindmap", mindMapID, "user", userID)
	return sess, nil
}

// Complete scores the submitted edges against the map's original edges and
// closes the session. A session can be completed once; elapsed is the play
// time in seconds and must not be negative.
func (s *Service) Complete(ctx context.Context, sessionID, userID string, submitted []graph.Edge, elapsed int) (*Session, score.Report, error) {
	if err := errors.ValidateElapsed(elapsed); err != nil {
		return nil, score.Report{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, score.Report{}, err
	}
	if sess.Completed {
		return nil, score.Report{}, ErrCompleted
	}

	m, err := s.maps.Get(ctx, sess.MindMapID)
	if err != nil {
		return nil, score.Report{}, errors.Wrap(errors.ErrCodeInternal, err, "load mind map %s for session %s", sess.MindMapID, sessionID)
	}

	report := score.Compare(m.Edges, submitted)
	now := s.now().UTC()
	sess.Score = report.Score
	sess.Completed = true
	sess.TimeElapsedSeconds = &elapsed
	sess.CompletedAt = &now
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, score.Report{}, err
	}

	observability.Game().OnSessionScored(ctx, sess.ID, sess.Score, sess.Elapsed())
	s.logger.Info("game session completed", "session", sess.ID, "score", sess.Score,
		"correct", report.Correct, "total", report.Total, "elapsed", sess.Elapsed())
	return sess, report, nil
}

// Get returns the session if it belongs to userID.
func (s *Service) Get(ctx context.Context, sessionID, userID string) (*Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrNotFound
	}
	return sess, nil
}

// List returns userID's sessions, optionally restricted to one map, newest
// first. A non-positive limit means DefaultListLimit.
func (s *Service) List(ctx context.Context, userID, mindMapID string, limit int) ([]*Session, error) {
	if err := errors.ValidateID("user id", userID); err != nil {
		return nil, err
	}
	return s.sessions.List(ctx, Filter{UserID: userID, MindMapID: mindMapID, Limit: limit})
}

// Board returns the map of a session prepared for play: edges removed and
// nodes kept in document order.
func (s *Service) Board(ctx context.Context, sessionID, userID string) (*graph.MindMap, error) {
	sess, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	m, err := s.mindMap(ctx, userID, sess.MindMapID)
	if err != nil {
		return nil, err
	}
	m.Edges = []graph.Edge{}
	return m, nil
}

func (s *Service) mindMap(ctx context.Context, userID, id string) (*graph.MindMap, error) {
	m, err := s.maps.Get(ctx, id)
	if errors.Is(err, errors.ErrCodeMindMapNotFound) || (err == nil && m.UserID != "" && m.UserID != userID) {
		return nil, errors.New(errors.ErrCodeMindMapNotFound, "mind map %q not found or access denied", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
