package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mindtower/pkg/config"
	"github.com/matzehuels/mindtower/pkg/game"
	"github.com/matzehuels/mindtower/pkg/store"
)

// backends holds the mind map repository and session store selected by
// the configuration.
type backends struct {
	Maps     store.Repository
	Sessions game.Store
	closers  []func(context.Context) error
}

// Close releases the backend connections.
func (b *backends) Close(ctx context.Context) error {
	var first error
	for _, fn := range b.closers {
		if err := fn(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openBackends connects the configured store backend. Both stores report
// their reads and writes to the observability hooks.
//
// Redis keeps only game sessions; mind maps then live in the file
// repository under the data dir.
func openBackends(ctx context.Context, cfg config.StoreConfig) (*backends, error) {
	b := &backends{}

	switch cfg.Backend {
	case config.BackendMemory:
		b.Maps = store.NewMemoryRepository()
		b.Sessions = game.NewMemoryStore()

	case config.BackendFile:
		maps, err := store.NewFileRepository(filepath.Join(cfg.Dir, "mindmaps"))
		if err != nil {
			return nil, err
		}
		sessions, err := game.NewFileStore(filepath.Join(cfg.Dir, "sessions"))
		if err != nil {
			return nil, err
		}
		b.Maps, b.Sessions = maps, sessions

	case config.BackendRedis:
		maps, err := store.NewFileRepository(filepath.Join(cfg.Dir, "mindmaps"))
		if err != nil {
			return nil, err
		}
		sessions, err := game.NewRedisStore(ctx, game.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			return nil, err
		}
		b.Maps, b.Sessions = maps, sessions
		b.closers = append(b.closers, func(context.Context) error { return sessions.Close() })

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		b.closers = append(b.closers, client.Disconnect)
		if err := client.Ping(ctx, nil); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		db := client.Database(cfg.MongoDatabase)
		maps, err := store.NewMongoRepository(ctx, db)
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		sessions, err := game.NewMongoStore(ctx, db)
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.Maps, b.Sessions = maps, sessions

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	loggerFromContext(ctx).Debug("opened store", "backend", cfg.Backend, "dir", cfg.Dir)
	b.Maps = store.Instrument(b.Maps, cfg.Backend)
	b.Sessions = game.Instrument(b.Sessions, cfg.Backend)
	return b, nil
}
