package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/storage"
)

const documentContentType = "application/json"

type objectDocumentStore struct {
	objects storage.ObjectStorage
	key     string
	logger  *slog.Logger
}

// NewObjectDocumentStore keeps the document as a single object (R2/S3).
// A PutObject either replaces the whole object or fails, so there is no partial write.
func NewObjectDocumentStore(objects storage.ObjectStorage, key string, logger *slog.Logger) DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &objectDocumentStore{objects: objects, key: key, logger: logger}
}

func (o *objectDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	data, err := o.objects.Get(ctx, o.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return decodeDocument(data)
}

func (o *objectDocumentStore) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	result, err := o.objects.Put(ctx, o.key, documentContentType, bytes.NewReader(data))
	if err != nil {
		return err
	}
	o.logger.DebugContext(ctx, "state object written",
		slog.String("key", result.Key),
		slog.String("etag", result.ETag),
		slog.String("location", result.Location),
	)
	return nil
}
