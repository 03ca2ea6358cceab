package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/scrim-tournaments/models"
)

// ErrSkipCommit can be returned from an Update callback when nothing changed;
// Update then returns nil without writing.
var ErrSkipCommit = errors.New("skip commit")

const defaultPersistTimeout = 5 * time.Second

// StateStore - транзакционный слой доступа к общему состоянию.
// Мутации сериализуются: одна в полете. Каждая работает на копии документа,
// копия записывается в DocumentStore и только после успешной записи
// становится текущим состоянием.
type StateStore struct {
	mu             sync.RWMutex
	doc            *models.Document
	backend        DocumentStore
	persistTimeout time.Duration
	logger         *slog.Logger
}

type StateStoreOptions struct {
	PersistTimeout time.Duration
	Logger         *slog.Logger
}

func NewStateStore(ctx context.Context, backend DocumentStore, opts StateStoreOptions) (*StateStore, error) {
	doc, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Normalize()

	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = defaultPersistTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	opts.Logger.Info("tournament state loaded",
		slog.Int("templates", len(doc.Templates)),
		slog.Int("tournaments", len(doc.Tournaments)),
		slog.Int("teams", len(doc.Teams)),
		slog.Int("submissions", len(doc.Submissions)),
	)

	return &StateStore{
		doc:            doc,
		backend:        backend,
		persistTimeout: opts.PersistTimeout,
		logger:         opts.Logger,
	}, nil
}

// View runs fn against the current document under a read lock.
// fn must not modify the document or retain pointers into it.
func (s *StateStore) View(fn func(doc *models.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// Update applies fn as one atomic read-modify-write.
func (s *StateStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, ErrSkipCommit) {
			return nil
		}
		return err
	}

	persistCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	if err := s.backend.Save(persistCtx, next); err != nil {
		s.logger.ErrorContext(ctx, "state write failed, mutation discarded", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	s.doc = next
	return nil
}
