package docstore

import (
	"fmt"
	"strings"
)

// Path is a parsed collection path. For "users/u1/workoutSplits" Parent is
// "users/u1" and Collection is "workoutSplits"; top-level collections have an
// empty Parent.
type Path struct {
	Parent     string
	Collection string
}

// String rebuilds the slash-separated form.
func (p Path) String() string {
	if p.Parent == "" {
		return p.Collection
	}
	return p.Parent + "/" + p.Collection
}

// ParsePath validates a collection path.
func ParsePath(path string) (Path, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Path{}, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	segments := strings.Split(trimmed, "/")
	if len(segments)%2 == 0 {
		return Path{}, fmt.Errorf("%w: %q names a document, not a collection", ErrInvalidPath, path)
	}
	for _, s := range segments {
		if s == "" {
			return Path{}, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
	}
	last := len(segments) - 1
	return Path{
		Parent:     strings.Join(segments[:last], "/"),
		Collection: segments[last],
	}, nil
}

// Join builds a path from segments, e.g. Join("users", uid, "workoutSplits").
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}
