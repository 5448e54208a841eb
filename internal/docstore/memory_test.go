package docstore_test

import (
	"testing"

	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/docstore/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) docstore.Store {
		return docstore.NewMemory()
	})
}
