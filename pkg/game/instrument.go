package game

import (
	"context"

	"github.com/matzehuels/mindtower/pkg/observability"
)

const kindSession = "session"

type instrumented struct {
	Store
	backend string
}

// Instrument reports every Get and Put of s to the registered store hooks
// under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Store.Get(ctx, id)
	observability.Store().OnRead(ctx, s.backend, kindSession, err == nil)
	return sess, err
}

func (s *instrumented) Put(ctx context.Context, sess *Session) error {
	err := s.Store.Put(ctx, sess)
	observability.Store().OnWrite(ctx, s.backend, kindSession, err)
	return err
}
