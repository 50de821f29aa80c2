package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
)

// MindMapCollection is the collection MongoRepository writes to.
const MindMapCollection = "mind_maps"

// MongoRepository stores mind maps as documents keyed by _id.
type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoRepository uses the mind_maps collection of db and ensures the
// owner/creation-time index used by List exists.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	coll := db.Collection(MindMapCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create mind map index: %w", err)
	}
	return &MongoRepository{coll: coll, now: time.Now}, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*graph.MindMap, error) {
	var m graph.MindMap
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find mind map %s", id)
	}
	return &m, nil
}

func (r *MongoRepository) Put(ctx context.Context, m *graph.MindMap) error {
	if m == nil {
		return Prepare(m, r.now())
	}
	if m.CreatedAt.IsZero() {
		if old, err := r.Get(ctx, m.ID); err == nil {
			m.CreatedAt = old.CreatedAt
		}
	}
	if err := Prepare(m, r.now()); err != nil {
		return err
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store mind map %s", m.ID)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, userID string, limit int) ([]*graph.MindMap, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list mind maps")
	}
	var out []*graph.MindMap
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode mind maps")
	}
	return out, nil
}

var _ Repository = (*MongoRepository)(nil)
