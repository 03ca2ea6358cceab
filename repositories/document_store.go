package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/scrim-tournaments/models"
)

var (
	// ErrPersistFailed оборачивает любую ошибку записи состояния.
	ErrPersistFailed   = errors.New("failed to persist tournament state")
	ErrLoadFailed      = errors.New("failed to load tournament state")
	ErrDocumentCorrupt = errors.New("tournament state document is corrupt")
)

// DocumentStore - сменный механизм хранения. Документ читается один раз при
// старте и записывается целиком после каждой мутации.
type DocumentStore interface {
	// Load returns an empty document when nothing has been stored yet.
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

func encodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode state document: %w", err)
	}
	return data, nil
}

func decodeDocument(data []byte) (*models.Document, error) {
	doc := models.NewDocument()
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentCorrupt, err)
	}
	doc.Normalize()
	return doc, nil
}
