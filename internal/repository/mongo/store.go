// internal/repository/mongo/store.go
package mongo

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/gympumped/internal/docstore"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Every document carries the path of its parent document so that
// "users/{uid}/workoutSplits" maps onto one "workoutSplits" collection.
const parentField = "_parent"

// Store implements docstore.Store on MongoDB.
type Store struct {
	db *mongo.Database
}

// NewStore creates a document store backed by db.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) NewID() string {
	return uuid.NewString()
}

func (s *Store) collection(path string) (*mongo.Collection, string, error) {
	p, err := docstore.ParsePath(path)
	if err != nil {
		return nil, "", err
	}
	return s.db.Collection(p.Collection), p.Parent, nil
}

func docFilter(parent, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: parentField, Value: parent}}
}

func (s *Store) Get(ctx context.Context, path, id string) (docstore.Document, error) {
	coll, parent, err := s.collection(path)
	if err != nil {
		return docstore.Document{}, err
	}
	raw, err := coll.FindOne(ctx, docFilter(parent, id)).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	return docstore.Document{ID: id, Data: raw}, nil
}

func (s *Store) Set(ctx context.Context, path, id string, doc any) error {
	coll, parent, err := s.collection(path)
	if err != nil {
		return err
	}
	return s.replace(ctx, coll, parent, id, doc)
}

func (s *Store) replace(ctx context.Context, coll *mongo.Collection, parent, id string, doc any) error {
	body, err := withKeys(parent, id, doc)
	if err != nil {
		return err
	}
	_, err = coll.ReplaceOne(ctx, docFilter(parent, id), body, options.Replace().SetUpsert(true))
	return err
}

// withKeys re-encodes doc with _id and _parent as its leading fields.
func withKeys(parent, id string, doc any) (bson.D, error) {
	raw, err := docstore.Encode(doc)
	if err != nil {
		return nil, err
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrNotDocument, err)
	}
	body := bson.D{{Key: "_id", Value: id}, {Key: parentField, Value: parent}}
	for _, f := range fields {
		if f.Key == "_id" || f.Key == parentField {
			continue
		}
		body = append(body, f)
	}
	return body, nil
}

func (s *Store) Merge(ctx context.Context, path, id string, fields map[string]any) error {
	coll, parent, err := s.collection(path)
	if err != nil {
		return err
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	result, err := coll.UpdateOne(ctx, docFilter(parent, id), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path, id string) error {
	coll, parent, err := s.collection(path)
	if err != nil {
		return err
	}
	// DeletedCount == 0 is fine, deletes are idempotent.
	_, err = coll.DeleteOne(ctx, docFilter(parent, id))
	return err
}

func (s *Store) Query(ctx context.Context, path string, q docstore.Query) ([]docstore.Document, error) {
	coll, parent, err := s.collection(path)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: parentField, Value: parent}}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}

	findOptions := options.Find()
	if q.OrderField != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		findOptions.SetSort(bson.D{{Key: q.OrderField, Value: dir}, {Key: "_id", Value: 1}})
	} else {
		findOptions.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if q.Limit > 0 {
		findOptions.SetLimit(int64(q.Limit))
	}

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []docstore.Document
	for cursor.Next(ctx) {
		// cursor.Current is reused by the next call to Next.
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)
		id, _ := raw.Lookup("_id").StringValueOK()
		docs = append(docs, docstore.Document{ID: id, Data: raw})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Batch runs every op inside one multi-document transaction, which needs a
// replica set or sharded cluster.
func (s *Store) Batch(ctx context.Context, ops []docstore.Op) error {
	for _, op := range ops {
		if _, err := docstore.ParsePath(op.Path); err != nil {
			return err
		}
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, op := range ops {
			coll, parent, err := s.collection(op.Path)
			if err != nil {
				return nil, err
			}
			switch op.Kind {
			case docstore.OpSet:
				err = s.replace(sc, coll, parent, op.ID, op.Doc)
			case docstore.OpDelete:
				_, err = coll.DeleteOne(sc, docFilter(parent, op.ID))
			}
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
