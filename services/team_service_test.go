package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRoster_RegisterTeam(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.mustTemplate(t, "Squads", 1, 10)
	tour := env.mustTournament(t, "g1", tpl.ID)
	env.mustTeam(t, tour.ID, "Alpha", "c1")

	tests := []struct {
		name    string
		input   RegisterTeamInput
		wantErr error
	}{
		{name: "second team", input: RegisterTeamInput{TournamentID: tour.ID, Name: "Bravo", CaptainID: "c2"}},
		{name: "empty name", input: RegisterTeamInput{TournamentID: tour.ID, Name: " ", CaptainID: "c3"}, wantErr: ErrValidation},
		{name: "unknown tournament", input: RegisterTeamInput{TournamentID: "missing", Name: "Charlie", CaptainID: "c3"}, wantErr: ErrNotFound},
		{name: "captain already has team", input: RegisterTeamInput{TournamentID: tour.ID, Name: "Charlie", CaptainID: "c1"}, wantErr: ErrConflict},
		{name: "team name taken", input: RegisterTeamInput{TournamentID: tour.ID, Name: "  alpha ", CaptainID: "c4"}, wantErr: ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, err := env.roster.RegisterTeam(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tour.ID, team.TournamentID)
		})
	}
}

func TestTeamRoster_RegistrationClosedAfterStart(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.mustTemplate(t, "Squads", 1, 10)
	tour := env.mustTournament(t, "g1", tpl.ID)
	env.mustStart(t, tour.ID)

	_, err := env.roster.RegisterTeam(context.Background(), RegisterTeamInput{
		TournamentID: tour.ID, Name: "Late", CaptainID: "c9",
	})
	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorIs(t, err, ErrRegistrationNotOpen)
}

func TestTeamRoster_SameCaptainAcrossTournaments(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.mustTemplate(t, "Squads", 1, 10)
	t1 := env.mustTournament(t, "g1", tpl.ID)
	t2 := env.mustTournament(t, "g2", tpl.ID)

	a := env.mustTeam(t, t1.ID, "Alpha", "c1")
	b := env.mustTeam(t, t2.ID, "Alpha", "c1")

	found, err := env.roster.FindByCaptain(context.Background(), "c1", t2.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)
	assert.NotEqual(t, a.ID, b.ID)

	_, err = env.roster.FindByCaptain(context.Background(), "c2", t1.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTeamRoster_ListTeams(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.mustTemplate(t, "Squads", 1, 10)
	tour := env.mustTournament(t, "g1", tpl.ID)
	env.mustTeam(t, tour.ID, "Alpha", "c1")
	env.mustTeam(t, tour.ID, "Bravo", "c2")

	teams, err := env.roster.ListTeams(context.Background(), tour.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Alpha", teams[0].Name)

	_, err = env.roster.ListTeams(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
