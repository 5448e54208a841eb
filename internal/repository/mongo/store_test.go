package mongo

import (
	"context"
	"testing"
	"time"

	"alcyxob/gympumped/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWithKeys_LeadsWithIDAndParent(t *testing.T) {
	doc := struct {
		Name      string    `bson:"name"`
		ID        string    `bson:"_id"`
		CreatedAt time.Time `bson:"createdAt"`
	}{Name: "PPL", ID: "stale", CreatedAt: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)}

	body, err := withKeys("users/u1", "s1", doc)
	require.NoError(t, err)
	require.Len(t, body, 4)
	assert.Equal(t, bson.E{Key: "_id", Value: "s1"}, body[0])
	assert.Equal(t, bson.E{Key: parentField, Value: "users/u1"}, body[1])
	assert.Equal(t, "name", body[2].Key)
	assert.Equal(t, "createdAt", body[3].Key)
}

func TestWithKeys_RejectsNonDocuments(t *testing.T) {
	_, err := withKeys("", "x", 42)
	assert.ErrorIs(t, err, docstore.ErrNotDocument)
}

func TestStore_InvalidPathNeverReachesServer(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	_, err := s.Get(ctx, "users/u1", "x")
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
	assert.ErrorIs(t, s.Set(ctx, "", "x", bson.M{}), docstore.ErrInvalidPath)
	_, err = s.Query(ctx, "users//workoutSplits", docstore.Query{})
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
}
