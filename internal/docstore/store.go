// Package docstore defines the path-addressed document store every repository
// talks to, plus an in-memory implementation.
//
// A collection path has an odd number of segments: "completedWorkouts",
// "users/{uid}/workoutSplits". Documents are BSON in every backend so that a
// malformed document fails to decode on its own without poisoning a query.
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPath = errors.New("invalid collection path")
	ErrNotDocument = errors.New("value does not encode to a document")
)

// Document is a stored document and its key within a collection.
type Document struct {
	ID   string
	Data bson.Raw
}

// Decode unmarshals the document into v.
func (d Document) Decode(v any) error {
	return bson.Unmarshal(d.Data, v)
}

// Store is the contract backends implement.
type Store interface {
	// NewID returns a fresh unique document key.
	NewID() string
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, path, id string) (Document, error)
	// Set writes doc under id, replacing any existing document.
	Set(ctx context.Context, path, id string, doc any) error
	// Merge sets the given top-level fields on an existing document.
	// Returns ErrNotFound when the document does not exist.
	Merge(ctx context.Context, path, id string, fields map[string]any) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, path, id string) error
	// Query returns the documents of a collection matching q.
	Query(ctx context.Context, path string, q Query) ([]Document, error)
	// Batch applies every op or none of them.
	Batch(ctx context.Context, ops []Op) error
}

// OpKind selects what a batch Op does.
type OpKind int

const (
	OpSet OpKind = iota
	OpDelete
)

// Op is one write inside a Batch.
type Op struct {
	Kind OpKind
	Path string
	ID   string
	Doc  any // OpSet only
}

// SetOp is a full-overwrite write for Batch.
func SetOp(path, id string, doc any) Op {
	return Op{Kind: OpSet, Path: path, ID: id, Doc: doc}
}

// DeleteOp is an idempotent delete for Batch.
func DeleteOp(path, id string) Op {
	return Op{Kind: OpDelete, Path: path, ID: id}
}
