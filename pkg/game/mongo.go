package game

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionCollection is the collection MongoStore writes to.
const SessionCollection = "game_sessions"

// MongoStore keeps sessions as documents keyed by _id.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore uses the game_sessions collection of db and ensures the
// index List relies on exists.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(SessionCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "mind_map_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create session index: %w", err)
	}
	return &MongoStore{coll: coll}, nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find session: %w", err)
	}
	return &sess, nil
}

func (m *MongoStore) Put(ctx context.Context, sess *Session) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, sess, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo put session: %w", err)
	}
	return nil
}

func (m *MongoStore) List(ctx context.Context, f Filter) ([]*Session, error) {
	filter := bson.M{"user_id": f.UserID}
	if f.MindMapID != "" {
		filter["mind_map_id"] = f.MindMapID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(f.limit()))

	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list sessions: %w", err)
	}
	var out []*Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode sessions: %w", err)
	}
	return out, nil
}

var _ Store = (*MongoStore)(nil)
