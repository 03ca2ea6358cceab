package services

import (
	"context"
	"testing"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetStats(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.mustTemplate(t, "Squads", 1, 10, 5)
	first := env.mustTournament(t, "g1", tpl.ID)
	env.mustTeam(t, first.ID, "Alpha", "c1")
	env.mustTeam(t, first.ID, "Bravo", "c2")
	env.mustStart(t, first.ID)
	env.mustTournament(t, "g2", tpl.ID)

	a := env.mustSubmit(t, first.ID, "c1", 1, 1, 2)
	b := env.mustSubmit(t, first.ID, "c2", 1, 2, 0)
	env.mustSubmit(t, first.ID, "c1", 2, 3, 1)
	env.mustApprove(t, a.ID)
	_, err := env.workflow.Reject(context.Background(), b.ID)
	require.NoError(t, err)

	stats, err := NewDashboardService(env.store).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TemplatesTotal:          1,
		TournamentsTotal:        2,
		RegistrationTournaments: 1,
		ActiveTournaments:       1,
		TeamsTotal:              2,
		PendingSubmissions:      1,
		ApprovedSubmissions:     1,
		RejectedSubmissions:     1,
	}, stats)
}
