package repositories

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStorage struct {
	objects map[string][]byte
	putErr  error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) Put(ctx context.Context, key, contentType string, r io.Reader) (*storage.PutResult, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.objects[key] = data
	return &storage.PutResult{Key: key, Location: "https://cdn.example.com/" + key, ETag: "etag-1"}, nil
}

func (f *fakeObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}


func TestObjectDocumentStore(t *testing.T) {
	objects := newFakeObjectStorage()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := NewObjectDocumentStore(objects, "state/doc.json", logger)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Teams)

	doc.Teams = append(doc.Teams, models.Team{ID: "a", Name: "Alpha"})
	require.NoError(t, store.Save(context.Background(), doc))
	assert.Contains(t, objects.objects, "state/doc.json")
	assert.Contains(t, logs.String(), `"etag":"etag-1"`)
	assert.Contains(t, logs.String(), `"location":"https://cdn.example.com/state/doc.json"`)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Teams, 1)
	assert.Equal(t, "Alpha", loaded.Teams[0].Name)

	objects.putErr = errors.New("503 slow down")
	require.Error(t, store.Save(context.Background(), loaded))
}
