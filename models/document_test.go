package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_PlacementBonus(t *testing.T) {
	tpl := &Template{PlacementPoints: []int{10, 5, 0}}

	tests := []struct {
		name string
		rank int
		want int
	}{
		{name: "first place", rank: 1, want: 10},
		{name: "second place", rank: 2, want: 5},
		{name: "last configured tier", rank: 3, want: 0},
		{name: "beyond table", rank: 4, want: 0},
		{name: "far beyond table", rank: 99, want: 0},
		{name: "zero rank", rank: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tpl.PlacementBonus(tt.rank))
		})
	}

	var nilTpl *Template
	assert.Equal(t, 0, nilTpl.PlacementBonus(1))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	reviewed := time.Now()
	doc := NewDocument()
	doc.Templates = append(doc.Templates, Template{ID: "tpl", PlacementPoints: []int{10, 5}})
	doc.Tournaments = append(doc.Tournaments, Tournament{ID: "t1", StartedAt: &reviewed})
	doc.Teams = append(doc.Teams, Team{ID: "team", Name: "Alpha"})
	doc.Submissions = append(doc.Submissions, Submission{ID: "s1", Status: SubmissionPending, ReviewedAt: &reviewed})

	cp := doc.Clone()
	cp.Templates[0].PlacementPoints[0] = 99
	cp.Tournaments[0].Status = StatusActive
	*cp.Tournaments[0].StartedAt = reviewed.Add(time.Hour)
	cp.Teams[0].Name = "Bravo"
	cp.Submissions[0].Status = SubmissionApproved
	*cp.Submissions[0].ReviewedAt = reviewed.Add(time.Hour)
	cp.Submissions = append(cp.Submissions, Submission{ID: "s2"})

	assert.Equal(t, 10, doc.Templates[0].PlacementPoints[0])
	assert.Equal(t, TournamentStatus(""), doc.Tournaments[0].Status)
	assert.True(t, doc.Tournaments[0].StartedAt.Equal(reviewed))
	assert.Equal(t, "Alpha", doc.Teams[0].Name)
	assert.Equal(t, SubmissionPending, doc.Submissions[0].Status)
	assert.True(t, doc.Submissions[0].ReviewedAt.Equal(reviewed))
	assert.Len(t, doc.Submissions, 1)
}

func TestDocument_Lookups(t *testing.T) {
	doc := NewDocument()
	doc.Tournaments = append(doc.Tournaments,
		Tournament{ID: "old", ScopeID: "g1", Status: StatusCompleted},
		Tournament{ID: "reg", ScopeID: "g1", Status: StatusRegistration},
		Tournament{ID: "other", ScopeID: "g2", Status: StatusActive},
	)
	doc.Teams = append(doc.Teams,
		Team{ID: "a", CaptainID: "c1", TournamentID: "reg"},
		Team{ID: "b", CaptainID: "c1", TournamentID: "other"},
	)

	open := doc.OpenTournamentsForScope("g1")
	require.Len(t, open, 1)
	assert.Equal(t, "reg", open[0].ID)

	team := doc.TeamByCaptain("c1", "other")
	require.NotNil(t, team)
	assert.Equal(t, "b", team.ID)
	assert.Nil(t, doc.TeamByCaptain("c2", "reg"))

	assert.Len(t, doc.TeamsByTournament("reg"), 1)
	assert.Nil(t, doc.SubmissionByID("missing"))
}

func TestDocument_Normalize(t *testing.T) {
	doc := &Document{}
	doc.Normalize()
	assert.NotNil(t, doc.Templates)
	assert.NotNil(t, doc.Tournaments)
	assert.NotNil(t, doc.Teams)
	assert.NotNil(t, doc.Submissions)
}
