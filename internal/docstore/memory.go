package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.Raw
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]bson.Raw)}
}

func (m *Memory) NewID() string {
	return uuid.NewString()
}

func (m *Memory) Get(ctx context.Context, path, id string) (Document, error) {
	p, err := ParsePath(path)
	if err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.collections[p.String()][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: raw}, nil
}

func (m *Memory) Set(ctx context.Context, path, id string, doc any) error {
	return m.Batch(ctx, []Op{SetOp(path, id, doc)})
}

func (m *Memory) Merge(ctx context.Context, path, id string, fields map[string]any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.collections[p.String()]
	raw, ok := coll[id]
	if !ok {
		return ErrNotFound
	}
	merged, err := MergeFields(raw, fields)
	if err != nil {
		return err
	}
	coll[id] = merged
	return nil
}

func (m *Memory) Delete(ctx context.Context, path, id string) error {
	return m.Batch(ctx, []Op{DeleteOp(path, id)})
}

func (m *Memory) Query(ctx context.Context, path string, q Query) ([]Document, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	coll := m.collections[p.String()]
	docs := make([]Document, 0, len(coll))
	for id, raw := range coll {
		docs = append(docs, Document{ID: id, Data: raw})
	}
	m.mu.RUnlock()
	return Apply(docs, q)
}

// Batch validates and encodes every op before applying any.
func (m *Memory) Batch(ctx context.Context, ops []Op) error {
	type prepared struct {
		coll string
		op   Op
		raw  bson.Raw
	}
	ready := make([]prepared, 0, len(ops))
	for _, op := range ops {
		p, err := ParsePath(op.Path)
		if err != nil {
			return err
		}
		pr := prepared{coll: p.String(), op: op}
		if op.Kind == OpSet {
			if pr.raw, err = Encode(op.Doc); err != nil {
				return err
			}
		}
		ready = append(ready, pr)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pr := range ready {
		switch pr.op.Kind {
		case OpSet:
			coll, ok := m.collections[pr.coll]
			if !ok {
				coll = make(map[string]bson.Raw)
				m.collections[pr.coll] = coll
			}
			coll[pr.op.ID] = pr.raw
		case OpDelete:
			delete(m.collections[pr.coll], pr.op.ID)
		}
	}
	return nil
}

// Len reports how many documents a collection holds.
func (m *Memory) Len(path string) int {
	p, err := ParsePath(path)
	if err != nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[p.String()])
}
