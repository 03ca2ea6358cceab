package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Dosada05/scrim-tournaments/models"
)

type fileDocumentStore struct {
	path string
}

// NewFileDocumentStore хранит документ в JSON-файле. Запись атомарная:
// временный файл в той же директории + rename.
func NewFileDocumentStore(path string) DocumentStore {
	return &fileDocumentStore{path: path}
}

func (f *fileDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrLoadFailed, f.path, err)
	}
	return decodeDocument(data)
}

func (f *fileDocumentStore) Save(ctx context.Context, doc *models.Document) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace state file %s: %w", f.path, err)
	}
	return nil
}
