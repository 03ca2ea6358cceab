package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	backend     *repositories.MemoryDocumentStore
	store       *repositories.StateStore
	templates   TemplateCatalog
	tournaments TournamentRegistry
	roster      TeamRoster
	workflow    SubmissionWorkflow
	leaderboard LeaderboardBuilder
	logs        *recordingHandler
}

// recordingHandler keeps log records so tests can assert on warnings.
type recordingHandler struct {
	slog.Handler
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithBackend(t, repositories.NewMemoryDocumentStore())
}

func newTestEnvWithBackend(t *testing.T, backend *repositories.MemoryDocumentStore) *testEnv {
	t.Helper()
	logs := &recordingHandler{Handler: slog.NewTextHandler(io.Discard, nil)}
	logger := slog.New(logs)

	store, err := repositories.NewStateStore(context.Background(), backend, repositories.StateStoreOptions{Logger: logger})
	require.NoError(t, err)

	metrics := NewMetrics(prometheus.NewRegistry())
	return &testEnv{
		backend:     backend,
		store:       store,
		templates:   NewTemplateCatalog(store, logger, metrics),
		tournaments: NewTournamentRegistry(store, logger, metrics),
		roster:      NewTeamRoster(store, logger, metrics),
		workflow:    NewSubmissionWorkflow(store, logger, metrics),
		leaderboard: NewLeaderboardBuilder(store, logger, metrics),
		logs:        logs,
	}
}

// --- fixtures ---

func (e *testEnv) mustTemplate(t *testing.T, name string, killPoints int, placement ...int) *models.Template {
	t.Helper()
	tpl, err := e.templates.CreateTemplate(context.Background(), CreateTemplateInput{
		Name: name, KillPoints: killPoints, PlacementPoints: placement, TeamSize: 4,
	})
	require.NoError(t, err)
	return tpl
}

func (e *testEnv) mustTournament(t *testing.T, scopeID, templateRef string) *models.Tournament {
	t.Helper()
	tour, err := e.tournaments.CreateTournament(context.Background(), CreateTournamentInput{
		Name: "Cup " + scopeID, TemplateRef: templateRef, MatchCount: 6, ScopeID: scopeID,
	})
	require.NoError(t, err)
	return tour
}

func (e *testEnv) mustStart(t *testing.T, id string) {
	t.Helper()
	_, err := e.tournaments.StartTournament(context.Background(), id)
	require.NoError(t, err)
}

func (e *testEnv) mustTeam(t *testing.T, tournamentID, name, captain string) *models.Team {
	t.Helper()
	team, err := e.roster.RegisterTeam(context.Background(), RegisterTeamInput{
		TournamentID: tournamentID, Name: name, CaptainID: captain,
	})
	require.NoError(t, err)
	return team
}

func (e *testEnv) mustSubmit(t *testing.T, tournamentID, captain string, match, rank, kills int) *models.Submission {
	t.Helper()
	sub, err := e.workflow.Submit(context.Background(), SubmitInput{
		TournamentID: tournamentID, CaptainID: captain, MatchNumber: match, Rank: rank, Kills: kills,
		ProofRef: "https://cdn.example.com/proof.png",
	})
	require.NoError(t, err)
	return sub
}

func (e *testEnv) mustApprove(t *testing.T, id string) {
	t.Helper()
	_, err := e.workflow.Approve(context.Background(), id)
	require.NoError(t, err)
}
