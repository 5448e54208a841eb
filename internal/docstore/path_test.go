package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("users/u1/workoutSplits")
	require.NoError(t, err)
	assert.Equal(t, "users/u1", p.Parent)
	assert.Equal(t, "workoutSplits", p.Collection)
	assert.Equal(t, "users/u1/workoutSplits", p.String())

	p, err = ParsePath("/completedWorkouts/")
	require.NoError(t, err)
	assert.Empty(t, p.Parent)
	assert.Equal(t, "completedWorkouts", p.String())

	for _, bad := range []string{"", "users/u1", "users//splits"} {
		_, err := ParsePath(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestMergeFields_PreservesOrderAndAppends(t *testing.T) {
	raw, err := Encode(bson.D{{Key: "a", Value: 1}, {Key: "b", Value: "x"}})
	require.NoError(t, err)

	merged, err := MergeFields(raw, map[string]any{"b": "y", "c": true})
	require.NoError(t, err)

	var got bson.D
	require.NoError(t, bson.Unmarshal(merged, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "y", got[1].Value)
	assert.Equal(t, "c", got[2].Key)
}

func TestApply_MissingOrderFieldSortsFirst(t *testing.T) {
	withRank, _ := Encode(bson.M{"rank": 1})
	without, _ := Encode(bson.M{"name": "x"})

	out, err := Apply([]Document{{ID: "b", Data: withRank}, {ID: "a", Data: without}}, Query{}.OrderBy("rank", false))
	require.NoError(t, err)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}
