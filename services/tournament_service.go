package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
)

// TournamentRegistry owns the tournament lifecycle and the per-scope lookup.
type TournamentRegistry interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	StartTournament(ctx context.Context, id string) (*models.Tournament, error)
	CompleteTournament(ctx context.Context, id string) (*models.Tournament, error)
	FindActiveForScope(ctx context.Context, scopeID string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	// ListTournaments returns every tournament, or only those of scopeID when it is set.
	ListTournaments(ctx context.Context, scopeID string) ([]models.Tournament, error)
}

type CreateTournamentInput struct {
	Name        string `json:"name"`
	TemplateRef string `json:"template"`
	MatchCount  int    `json:"match_count"`
	ScopeID     string `json:"scope_id"`
}

type tournamentRegistry struct {
	store   *repositories.StateStore
	logger  *slog.Logger
	metrics *Metrics
}

func NewTournamentRegistry(store *repositories.StateStore, logger *slog.Logger, metrics *Metrics) TournamentRegistry {
	return &tournamentRegistry{store: store, logger: logger, metrics: metrics}
}

func (s *tournamentRegistry) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	scopeID := strings.TrimSpace(input.ScopeID)
	var err error
	switch {
	case name == "":
		err = validationErrorf("tournament name is required")
	case scopeID == "":
		err = validationErrorf("scope id is required")
	case input.MatchCount < 1:
		err = validationErrorf("match count must be >= 1, got %d", input.MatchCount)
	}
	if err != nil {
		s.metrics.mutation("tournament_create", err)
		return nil, err
	}

	var created models.Tournament
	err = s.store.Update(ctx, func(doc *models.Document) error {
		tpl := resolveTemplate(doc, input.TemplateRef)
		if tpl == nil {
			return ErrTemplateNotFound
		}
		if open := doc.OpenTournamentsForScope(scopeID); len(open) > 0 {
			return fmt.Errorf("%w (%q is %s)", ErrScopeAlreadyHasTournament, open[len(open)-1].Name, open[len(open)-1].Status)
		}
		created = models.Tournament{
			ID:         newID(),
			Name:       name,
			TemplateID: tpl.ID,
			MatchCount: input.MatchCount,
			Status:     models.StatusRegistration,
			ScopeID:    scopeID,
			CreatedAt:  now(),
		}
		doc.Tournaments = append(doc.Tournaments, created)
		return nil
	})
	err = persistError(err)
	s.metrics.mutation("tournament_create", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", created.ID),
		slog.String("scope_id", created.ScopeID),
		slog.String("template_id", created.TemplateID),
	)
	return &created, nil
}

func (s *tournamentRegistry) StartTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.transition(ctx, id, models.StatusActive)
	s.metrics.mutation("tournament_start", err)
	return t, err
}

func (s *tournamentRegistry) CompleteTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.transition(ctx, id, models.StatusCompleted)
	s.metrics.mutation("tournament_complete", err)
	return t, err
}

func (s *tournamentRegistry) transition(ctx context.Context, id string, next models.TournamentStatus) (*models.Tournament, error) {
	var updated models.Tournament
	err := s.store.Update(ctx, func(doc *models.Document) error {
		t := doc.TournamentByID(id)
		if t == nil {
			return ErrTournamentNotFound
		}
		if !isValidStatusTransition(t.Status, next) {
			return fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, t.Status, next)
		}
		ts := now()
		switch next {
		case models.StatusActive:
			t.StartedAt = &ts
		case models.StatusCompleted:
			t.EndedAt = &ts
		}
		t.Status = next
		updated = t.Clone()
		return nil
	})
	if err = persistError(err); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament status changed",
		slog.String("tournament_id", updated.ID),
		slog.String("status", string(updated.Status)),
	)
	return &updated, nil
}

func (s *tournamentRegistry) FindActiveForScope(ctx context.Context, scopeID string) (*models.Tournament, error) {
	var found models.Tournament
	err := s.store.View(func(doc *models.Document) error {
		t := pickActiveForScope(ctx, s.logger, doc, scopeID)
		if t == nil {
			return ErrNoActiveTournament
		}
		found = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// pickActiveForScope returns the most recently created open tournament of the scope.
// More than one open tournament means the single-active invariant was broken
// upstream (e.g. an imported document); that is logged rather than hidden.
func pickActiveForScope(ctx context.Context, logger *slog.Logger, doc *models.Document, scopeID string) *models.Tournament {
	open := doc.OpenTournamentsForScope(scopeID)
	if len(open) == 0 {
		return nil
	}
	latest := open[0]
	for _, t := range open[1:] {
		// при равном CreatedAt побеждает более поздний в документе
		if !t.CreatedAt.Before(latest.CreatedAt) {
			latest = t
		}
	}
	if len(open) > 1 {
		ids := make([]string, len(open))
		for i, t := range open {
			ids[i] = t.ID
		}
		logger.WarnContext(ctx, "multiple open tournaments in scope, using the most recent",
			slog.String("scope_id", scopeID),
			slog.Any("candidates", ids),
			slog.String("chosen", latest.ID),
		)
	}
	return latest
}

func (s *tournamentRegistry) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	var found models.Tournament
	err := s.store.View(func(doc *models.Document) error {
		t := doc.TournamentByID(id)
		if t == nil {
			return ErrTournamentNotFound
		}
		found = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *tournamentRegistry) ListTournaments(ctx context.Context, scopeID string) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0)
	err := s.store.View(func(doc *models.Document) error {
		for _, t := range doc.Tournaments {
			if scopeID == "" || t.ScopeID == scopeID {
				out = append(out, t.Clone())
			}
		}
		return nil
	})
	return out, err
}
