package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/services"
)

func (d *Dispatcher) templateCreate(ctx context.Context, args templateCreateArgs) (string, error) {
	tpl, err := d.templates.CreateTemplate(ctx, services.CreateTemplateInput{
		Name:            args.Name,
		KillPoints:      args.KillPoints,
		PlacementPoints: args.PlacementPoints,
		TeamSize:        args.TeamSize,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Template %s saved!", tpl.Name), nil
}

func (d *Dispatcher) templateList(ctx context.Context) (string, error) {
	list, err := d.templates.ListTemplates(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "No templates yet.", nil
	}
	var b strings.Builder
	b.WriteString("**Templates:**")
	for _, tpl := range list {
		fmt.Fprintf(&b, "\n%s (`%s`): %d per kill, placement %s, team size %d",
			tpl.Name, tpl.Slug, tpl.KillPoints, formatPoints(tpl.PlacementPoints), tpl.TeamSize)
	}
	return b.String(), nil
}

func formatPoints(points []int) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func (d *Dispatcher) tournamentCreate(ctx context.Context, inv Invocation, args tournamentCreateArgs) (string, error) {
	t, err := d.tournaments.CreateTournament(ctx, services.CreateTournamentInput{
		Name:        args.Name,
		TemplateRef: args.TemplateRef,
		MatchCount:  args.MatchCount,
		ScopeID:     inv.ScopeID,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🏆 Tournament %s is open for /register!", t.Name), nil
}

func (d *Dispatcher) tournamentStart(ctx context.Context, inv Invocation) (string, error) {
	active, err := d.tournaments.FindActiveForScope(ctx, inv.ScopeID)
	if err != nil {
		return "", err
	}
	t, err := d.tournaments.StartTournament(ctx, active.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🔥 Tournament %s has started! %d matches, submit results with /submit.", t.Name, t.MatchCount), nil
}

func (d *Dispatcher) tournamentComplete(ctx context.Context, inv Invocation) (string, error) {
	active, err := d.tournaments.FindActiveForScope(ctx, inv.ScopeID)
	if err != nil {
		return "", err
	}
	t, err := d.tournaments.CompleteTournament(ctx, active.ID)
	if err != nil {
		return "", err
	}
	board, err := d.leaderboard.Build(ctx, t.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🏁 Tournament %s is over.\n%s", t.Name, formatLeaderboard(board)), nil
}

func (d *Dispatcher) tournamentLeaderboard(ctx context.Context, inv Invocation) (string, error) {
	board, err := d.leaderboard.BuildForScope(ctx, inv.ScopeID)
	if err != nil {
		return "", err
	}
	return formatLeaderboard(board), nil
}

func formatLeaderboard(board *models.Leaderboard) string {
	if board.Empty {
		return fmt.Sprintf("**Standings (%s):**\nNo scores yet.", board.TournamentName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Standings (%s):**", board.TournamentName)
	for _, s := range board.Standings {
		fmt.Fprintf(&b, "\n%d. %s: %d pts", s.Position, s.TeamName, s.Score)
	}
	return b.String()
}

func (d *Dispatcher) register(ctx context.Context, inv Invocation, args registerArgs) (string, error) {
	active, err := d.tournaments.FindActiveForScope(ctx, inv.ScopeID)
	if err != nil {
		return "", err
	}
	team, err := d.roster.RegisterTeam(ctx, services.RegisterTeamInput{
		TournamentID: active.ID,
		Name:         args.TeamName,
		CaptainID:    inv.UserID,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Registered %s for %s!", team.Name, active.Name), nil
}

func (d *Dispatcher) submit(ctx context.Context, inv Invocation, args submitArgs) (string, error) {
	active, err := d.tournaments.FindActiveForScope(ctx, inv.ScopeID)
	if err != nil {
		return "", err
	}
	_, err = d.workflow.Submit(ctx, services.SubmitInput{
		TournamentID: active.ID,
		CaptainID:    inv.UserID,
		MatchNumber:  args.MatchNumber,
		Rank:         args.Rank,
		Kills:        args.Kills,
		ProofRef:     args.ProofRef,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🚀 Match %d result submitted for review!", args.MatchNumber), nil
}
