// Package mongo implements the interface for MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarancss/chaingate/lib/store"
)

const (
	database   = "chaingate"
	collection = "submissions"
)

// Mongo implements a connection to a MongoDB database.
type Mongo struct {
	c *mgo.Client
}

// New returns a Mongo client connection to the specified MongoDB database uri.
func New(ctx context.Context, uri string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second) //nolint:gomnd // 5 seconds timeout
	defer cancel()

	c, err := mgo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongo DB in %s: %w", uri, err)
	}

	if err = c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())

		return nil, fmt.Errorf("error connecting to mongo DB: %w", err)
	}

	return &Mongo{c: c}, nil
}

// CloseMongo will close a database connection. Must be called at termination time.
func (m *Mongo) CloseMongo(ctx context.Context) error {
	return m.c.Disconnect(ctx)
}

func (m *Mongo) col() *mgo.Collection {
	return m.c.Database(database).Collection(collection)
}

func key(s store.Submission) bson.D {
	return bson.D{{Key: "coin", Value: s.Coin}, {Key: "network", Value: s.Network}, {Key: "txid", Value: s.TxID}}
}

// SaveSubmission saves a submission, replacing any previous record of the same transaction.
func (m *Mongo) SaveSubmission(ctx context.Context, s store.Submission) error {
	_, err := m.col().ReplaceOne(ctx, key(s), s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("could not save submission %s in db: %w", s.TxID, err)
	}

	return nil
}

// UpdateSubmission sets the status, block height and update time of a recorded submission.
func (m *Mongo) UpdateSubmission(ctx context.Context, s store.Submission) error {
	res, err := m.col().UpdateOne(ctx, key(s),
		bson.D{
			{
				Key: "$set", Value: bson.D{
					{Key: "status", Value: s.Status},
					{Key: "height", Value: s.BlockHeight},
					{Key: "updated", Value: s.Updated},
				},
			},
		})
	if err != nil {
		return fmt.Errorf("could not update submission %s in db: %w", s.TxID, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("submission %s: %w", s.TxID, store.ErrDataNotFound)
	}

	return nil
}

// GetSubmissions returns the submissions of coin in the given status, oldest first.
func (m *Mongo) GetSubmissions(ctx context.Context, coin string, status store.Status) ([]store.Submission, error) {
	cur, err := m.col().Find(ctx, bson.D{{Key: "coin", Value: coin}, {Key: "status", Value: status}},
		options.Find().SetSort(bson.D{{Key: "submitted", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error getting submissions of %s: %w", coin, err)
	}

	subs := []store.Submission{}
	if err = cur.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("error decoding submissions of %s: %w", coin, err)
	}

	return subs, nil
}
