package repositories

import (
	"context"
	"sync"

	"github.com/Dosada05/scrim-tournaments/models"
)

// MemoryDocumentStore keeps the encoded document in memory. Used for the
// "memory" driver and in tests; SaveFunc lets tests inject failures.
type MemoryDocumentStore struct {
	mu    sync.Mutex
	data  []byte
	saves int

	SaveFunc func(ctx context.Context, doc *models.Document) error
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{}
}

func (m *MemoryDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeDocument(m.data)
}

func (m *MemoryDocumentStore) Save(ctx context.Context, doc *models.Document) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, doc); err != nil {
			return err
		}
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves returns how many times the document was written.
func (m *MemoryDocumentStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
