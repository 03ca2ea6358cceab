package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
)

// TeamRoster owns team registration, scoped to one tournament.
type TeamRoster interface {
	RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
	FindByCaptain(ctx context.Context, captainID, tournamentID string) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID string) ([]models.Team, error)
}

type RegisterTeamInput struct {
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
	CaptainID    string `json:"captain_id"`
}

type teamRoster struct {
	store   *repositories.StateStore
	logger  *slog.Logger
	metrics *Metrics
}

func NewTeamRoster(store *repositories.StateStore, logger *slog.Logger, metrics *Metrics) TeamRoster {
	return &teamRoster{store: store, logger: logger, metrics: metrics}
}

func (s *teamRoster) RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	captainID := strings.TrimSpace(input.CaptainID)
	if name == "" || captainID == "" {
		err := validationErrorf("team name and captain are required")
		s.metrics.mutation("team_register", err)
		return nil, err
	}

	var created models.Team
	err := s.store.Update(ctx, func(doc *models.Document) error {
		t := doc.TournamentByID(input.TournamentID)
		if t == nil {
			return ErrTournamentNotFound
		}
		if t.Status != models.StatusRegistration {
			return ErrRegistrationNotOpen
		}
		if doc.TeamByCaptain(captainID, t.ID) != nil {
			return ErrCaptainAlreadyRegistered
		}
		key := normalizeName(name)
		for _, team := range doc.TeamsByTournament(t.ID) {
			if normalizeName(team.Name) == key {
				return ErrTeamNameConflict
			}
		}
		created = models.Team{
			ID:           newID(),
			Name:         name,
			CaptainID:    captainID,
			TournamentID: t.ID,
			CreatedAt:    now(),
		}
		doc.Teams = append(doc.Teams, created)
		return nil
	})
	err = persistError(err)
	s.metrics.mutation("team_register", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team registered",
		slog.String("team_id", created.ID),
		slog.String("tournament_id", created.TournamentID),
		slog.String("captain_id", created.CaptainID),
	)
	return &created, nil
}

func (s *teamRoster) FindByCaptain(ctx context.Context, captainID, tournamentID string) (*models.Team, error) {
	var found models.Team
	err := s.store.View(func(doc *models.Document) error {
		team := doc.TeamByCaptain(captainID, tournamentID)
		if team == nil {
			return ErrTeamNotFound
		}
		found = *team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *teamRoster) ListTeams(ctx context.Context, tournamentID string) ([]models.Team, error) {
	var teams []models.Team
	err := s.store.View(func(doc *models.Document) error {
		if doc.TournamentByID(tournamentID) == nil {
			return ErrTournamentNotFound
		}
		teams = doc.TeamsByTournament(tournamentID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}
