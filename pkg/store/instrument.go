package store

import (
	"context"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/observability"
)

const kindMindMap = "mindmap"

type instrumented struct {
	Repository
	backend string
}

// Instrument reports every Get and Put of r to the registered store hooks
// under the given backend name.
func Instrument(r Repository, backend string) Repository {
	return &instrumented{Repository: r, backend: backend}
}

func (r *instrumented) Get(ctx context.Context, id string) (*graph.MindMap, error) {
	m, err := r.Repository.Get(ctx, id)
	observability.Store().OnRead(ctx, r.backend, kindMindMap, err == nil)
	return m, err
}

func (r *instrumented) Put(ctx context.Context, m *graph.MindMap) error {
	err := r.Repository.Put(ctx, m)
	observability.Store().OnWrite(ctx, r.backend, kindMindMap, err)
	return err
}

// IsNotFound reports whether err means the requested map does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeMindMapNotFound)
}
