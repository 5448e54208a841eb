// Package storetest holds the behaviour every docstore.Store backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"alcyxob/gympumped/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type row struct {
	Name      string    `bson:"name"`
	Owner     string    `bson:"owner"`
	Rank      int       `bson:"rank"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Run exercises a fresh store from newStore against the shared contract.
func Run(t *testing.T, newStore func(t *testing.T) docstore.Store) {
	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "things", "nope")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "things", "a", row{Name: "first", Rank: 1}))
		require.NoError(t, s.Set(ctx, "things", "a", bson.M{"name": "second"}))

		doc, err := s.Get(ctx, "things", "a")
		require.NoError(t, err)
		assert.Equal(t, "a", doc.ID)
		var got row
		require.NoError(t, doc.Decode(&got))
		assert.Equal(t, "second", got.Name)
		assert.Zero(t, got.Rank, "full overwrite drops fields not in the new document")
	})

	t.Run("MergeKeepsOtherFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "things", "a", row{Name: "first", Rank: 1}))
		require.NoError(t, s.Merge(ctx, "things", "a", map[string]any{"rank": 5, "extra": "x"}))

		doc, err := s.Get(ctx, "things", "a")
		require.NoError(t, err)
		var got row
		require.NoError(t, doc.Decode(&got))
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, 5, got.Rank)
		assert.Equal(t, "x", doc.Data.Lookup("extra").StringValue())
	})

	t.Run("MergeMissing", func(t *testing.T) {
		s := newStore(t)
		err := s.Merge(context.Background(), "things", "ghost", map[string]any{"rank": 1})
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "things", "a", row{Name: "x"}))
		require.NoError(t, s.Delete(ctx, "things", "a"))
		require.NoError(t, s.Delete(ctx, "things", "a"))
		_, err := s.Get(ctx, "things", "a")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("QueryFiltersAndOrders", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, s.Set(ctx, "things", "a", row{Name: "a", Owner: "u1", CreatedAt: base}))
		require.NoError(t, s.Set(ctx, "things", "b", row{Name: "b", Owner: "u1", CreatedAt: base.Add(2 * time.Hour)}))
		require.NoError(t, s.Set(ctx, "things", "c", row{Name: "c", Owner: "u1", CreatedAt: base.Add(time.Hour)}))
		require.NoError(t, s.Set(ctx, "things", "d", row{Name: "d", Owner: "u2", CreatedAt: base.Add(3 * time.Hour)}))

		docs, err := s.Query(ctx, "things", docstore.Query{}.Where("owner", "u1").OrderBy("createdAt", true))
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, ids(docs))

		docs, err = s.Query(ctx, "things", docstore.Query{}.OrderBy("createdAt", false).WithLimit(2))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(docs))
	})

	t.Run("QueryEmptyCollection", func(t *testing.T) {
		s := newStore(t)
		docs, err := s.Query(context.Background(), "users/u1/things", docstore.Query{})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("SubcollectionsAreScoped", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "users/u1/things", "a", row{Name: "mine"}))
		require.NoError(t, s.Set(ctx, "users/u2/things", "a", row{Name: "theirs"}))

		docs, err := s.Query(ctx, "users/u1/things", docstore.Query{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		var got row
		require.NoError(t, docs[0].Decode(&got))
		assert.Equal(t, "mine", got.Name)
	})

	t.Run("BatchAppliesAll", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "things", "old", row{Name: "old"}))
		require.NoError(t, s.Batch(ctx, []docstore.Op{
			docstore.DeleteOp("things", "old"),
			docstore.SetOp("things", "new", row{Name: "new"}),
		}))
		_, err := s.Get(ctx, "things", "old")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
		_, err = s.Get(ctx, "things", "new")
		assert.NoError(t, err)
	})

	t.Run("BatchRejectsInvalidPathWithoutWriting", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		err := s.Batch(ctx, []docstore.Op{
			docstore.SetOp("things", "a", row{Name: "a"}),
			docstore.SetOp("users/u1", "b", row{Name: "b"}),
		})
		assert.ErrorIs(t, err, docstore.ErrInvalidPath)
		_, err = s.Get(ctx, "things", "a")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("NewIDIsUnique", func(t *testing.T) {
		s := newStore(t)
		assert.NotEqual(t, s.NewID(), s.NewID())
	})
}

func ids(docs []docstore.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
