// internal/domain/exercise.go
package domain

// Exercise is a single planned movement inside a WorkoutDay.
type Exercise struct {
	ID            string  `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Sets          int     `bson:"sets" json:"sets"`
	Reps          string  `bson:"reps" json:"reps"`                                       // String so ranges like "8-12" survive
	Weight        *int    `bson:"weight,omitempty" json:"weight,omitempty"`               // Optional working weight
	SupersetID    *string `bson:"supersetId,omitempty" json:"supersetId,omitempty"`       // Exercises sharing an ID are done back-to-back
	SupersetLabel *string `bson:"supersetLabel,omitempty" json:"supersetLabel,omitempty"` // e.g. "A1", "A2"
}

// IsSuperset reports whether the exercise belongs to a superset group.
func (e Exercise) IsSuperset() bool {
	return e.SupersetID != nil && *e.SupersetID != ""
}
