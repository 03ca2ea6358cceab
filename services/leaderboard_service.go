package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
)

// LeaderboardBuilder composes roster, submissions and scoring into standings.
// Read-only.
//
// Standings go by score descending. Equal scores are ordered by team name
// ignoring case ("alpha" before "Bravo"), then by the exact name, then by
// team id, and share a competition position (1, 2, 2, 4).
type LeaderboardBuilder interface {
	Build(ctx context.Context, tournamentID string) (*models.Leaderboard, error)
	// BuildForScope uses the scope's open tournament, or its latest one when none is open.
	BuildForScope(ctx context.Context, scopeID string) (*models.Leaderboard, error)
}

type leaderboardBuilder struct {
	store   *repositories.StateStore
	logger  *slog.Logger
	metrics *Metrics
}

func NewLeaderboardBuilder(store *repositories.StateStore, logger *slog.Logger, metrics *Metrics) LeaderboardBuilder {
	return &leaderboardBuilder{store: store, logger: logger, metrics: metrics}
}

// snapshot - копия всего, что нужно для подсчета, снятая под одной блокировкой.
type leaderboardSnapshot struct {
	tournament  models.Tournament
	template    models.Template
	teams       []models.Team
	submissions []models.Submission
}

func (b *leaderboardBuilder) Build(ctx context.Context, tournamentID string) (*models.Leaderboard, error) {
	var snap leaderboardSnapshot
	err := b.store.View(func(doc *models.Document) error {
		t := doc.TournamentByID(tournamentID)
		if t == nil {
			return ErrTournamentNotFound
		}
		return takeSnapshot(doc, t, &snap)
	})
	if err != nil {
		return nil, err
	}
	return b.assemble(snap), nil
}

func (b *leaderboardBuilder) BuildForScope(ctx context.Context, scopeID string) (*models.Leaderboard, error) {
	var snap leaderboardSnapshot
	err := b.store.View(func(doc *models.Document) error {
		t := pickActiveForScope(ctx, b.logger, doc, scopeID)
		if t == nil {
			for i := len(doc.Tournaments) - 1; i >= 0; i-- {
				if doc.Tournaments[i].ScopeID == scopeID {
					t = &doc.Tournaments[i]
					break
				}
			}
		}
		if t == nil {
			return ErrNoActiveTournament
		}
		return takeSnapshot(doc, t, &snap)
	})
	if err != nil {
		return nil, err
	}
	return b.assemble(snap), nil
}

func takeSnapshot(doc *models.Document, t *models.Tournament, snap *leaderboardSnapshot) error {
	tpl := doc.TemplateByID(t.TemplateID)
	if tpl == nil {
		return ErrTemplateNotFound
	}
	snap.tournament = t.Clone()
	snap.template = tpl.Clone()
	snap.teams = doc.TeamsByTournament(t.ID)

	teamIDs := make(map[string]struct{}, len(snap.teams))
	for _, team := range snap.teams {
		teamIDs[team.ID] = struct{}{}
	}
	snap.submissions = doc.SubmissionsByTeams(teamIDs)
	return nil
}

func (b *leaderboardBuilder) assemble(snap leaderboardSnapshot) *models.Leaderboard {
	defer b.metrics.observeLeaderboard(time.Now())

	approved := 0
	for _, sub := range snap.submissions {
		if sub.Status == models.SubmissionApproved {
			approved++
		}
	}

	standings := make([]models.Standing, 0, len(snap.teams))
	for _, team := range snap.teams {
		standings = append(standings, models.Standing{
			TeamID:   team.ID,
			TeamName: team.Name,
			Score:    TeamScore(team, &snap.template, snap.submissions),
		})
	}
	rankStandings(standings)

	return &models.Leaderboard{
		TournamentID:   snap.tournament.ID,
		TournamentName: snap.tournament.Name,
		Status:         snap.tournament.Status,
		Standings:      standings,
		Empty:          len(standings) == 0 || approved == 0,
	}
}

// rankStandings sorts by score desc, then team name asc ignoring case (team id
// as the last resort), and assigns competition positions: equal scores share a position.
func rankStandings(standings []models.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if la, lb := strings.ToLower(a.TeamName), strings.ToLower(b.TeamName); la != lb {
			return la < lb
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})
	for i := range standings {
		if i > 0 && standings[i].Score == standings[i-1].Score {
			standings[i].Position = standings[i-1].Position
			continue
		}
		standings[i].Position = i + 1
	}
}
