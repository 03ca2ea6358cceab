package services

import "github.com/Dosada05/scrim-tournaments/models"

// PlacementBonus is template.PlacementPoints[rank-1], or 0 when the rank is
// outside the table. Never an error: a match may report any rank.
func PlacementBonus(template *models.Template, rank int) int {
	return template.PlacementBonus(rank)
}

// TeamScore sums kills*killPoints + placement bonus over the team's approved
// submissions. Pending and rejected submissions contribute nothing.
func TeamScore(team models.Team, template *models.Template, submissions []models.Submission) int {
	if template == nil {
		return 0
	}
	total := 0
	for _, sub := range submissions {
		if sub.TeamID != team.ID || sub.Status != models.SubmissionApproved {
			continue
		}
		total += sub.Kills*template.KillPoints + PlacementBonus(template, sub.Rank)
	}
	return total
}
