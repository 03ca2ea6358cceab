package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDocumentStore_MissingFileIsEmpty(t *testing.T) {
	store := NewFileDocumentStore(filepath.Join(t.TempDir(), "state.json"))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Templates)
	assert.NotNil(t, doc.Submissions)
}

func TestFileDocumentStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewFileDocumentStore(path)

	doc := models.NewDocument()
	doc.Templates = append(doc.Templates, models.Template{ID: "tpl", Name: "Squads", KillPoints: 1, PlacementPoints: []int{10, 5, 0}, TeamSize: 4})
	doc.Tournaments = append(doc.Tournaments, models.Tournament{ID: "t1", TemplateID: "tpl", Status: models.StatusActive, ScopeID: "g1"})
	require.NoError(t, store.Save(context.Background(), doc))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Templates, 1)
	assert.Equal(t, []int{10, 5, 0}, loaded.Templates[0].PlacementPoints)
	assert.Equal(t, models.StatusActive, loaded.Tournaments[0].Status)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileDocumentStore_PartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"templates":[{"id":"x","name":"Old"}]}`), 0o644))

	doc, err := NewFileDocumentStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Templates, 1)
	assert.NotNil(t, doc.Teams)
}

func TestFileDocumentStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`[`), 0o644))

	_, err := NewFileDocumentStore(path).Load(context.Background())
	require.ErrorIs(t, err, ErrDocumentCorrupt)
}
