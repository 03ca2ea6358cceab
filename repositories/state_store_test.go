package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateStore(t *testing.T, backend DocumentStore) *StateStore {
	t.Helper()
	st, err := NewStateStore(context.Background(), backend, StateStoreOptions{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return st
}

func countTemplates(t *testing.T, st *StateStore) int {
	t.Helper()
	n := 0
	require.NoError(t, st.View(func(doc *models.Document) error {
		n = len(doc.Templates)
		return nil
	}))
	return n
}

func TestStateStore_UpdateCommits(t *testing.T) {
	backend := NewMemoryDocumentStore()
	st := newTestStateStore(t, backend)

	err := st.Update(context.Background(), func(doc *models.Document) error {
		doc.Templates = append(doc.Templates, models.Template{ID: "t1", Name: "Solo"})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countTemplates(t, st))
	assert.Equal(t, 1, backend.Saves())

	reloaded, err := backend.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, reloaded.Templates, 1)
	assert.Equal(t, "Solo", reloaded.Templates[0].Name)
}

func TestStateStore_CallbackErrorDiscardsChanges(t *testing.T) {
	backend := NewMemoryDocumentStore()
	st := newTestStateStore(t, backend)
	boom := errors.New("validation failed")

	err := st.Update(context.Background(), func(doc *models.Document) error {
		doc.Templates = append(doc.Templates, models.Template{ID: "t1"})
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countTemplates(t, st))
	assert.Equal(t, 0, backend.Saves())
}

func TestStateStore_PersistFailureLeavesStateUnchanged(t *testing.T) {
	backend := NewMemoryDocumentStore()
	st := newTestStateStore(t, backend)

	require.NoError(t, st.Update(context.Background(), func(doc *models.Document) error {
		doc.Submissions = append(doc.Submissions, models.Submission{ID: "s1", Status: models.SubmissionPending})
		return nil
	}))

	backend.SaveFunc = func(ctx context.Context, doc *models.Document) error {
		return errors.New("disk full")
	}
	err := st.Update(context.Background(), func(doc *models.Document) error {
		doc.Submissions[0].Status = models.SubmissionApproved
		return nil
	})
	require.ErrorIs(t, err, ErrPersistFailed)

	require.NoError(t, st.View(func(doc *models.Document) error {
		assert.Equal(t, models.SubmissionPending, doc.Submissions[0].Status)
		return nil
	}))
	persisted, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, persisted.Submissions[0].Status)
}

func TestStateStore_SkipCommit(t *testing.T) {
	backend := NewMemoryDocumentStore()
	st := newTestStateStore(t, backend)

	err := st.Update(context.Background(), func(doc *models.Document) error {
		return ErrSkipCommit
	})
	require.NoError(t, err)
	assert.Equal(t, 0, backend.Saves())
}

func TestStateStore_CanceledContext(t *testing.T) {
	st := newTestStateStore(t, NewMemoryDocumentStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := st.Update(ctx, func(doc *models.Document) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStateStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	backend := NewMemoryDocumentStore()
	st := newTestStateStore(t, backend)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := st.Update(context.Background(), func(doc *models.Document) error {
				doc.Templates = append(doc.Templates, models.Template{ID: fmt.Sprintf("t%d", i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, writers, countTemplates(t, st))
	persisted, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted.Templates, writers)
}

func TestNewStateStore_LoadError(t *testing.T) {
	backend := NewMemoryDocumentStore()
	backend.data = []byte("{not json")

	_, err := NewStateStore(context.Background(), backend, StateStoreOptions{})
	require.ErrorIs(t, err, ErrDocumentCorrupt)
}
