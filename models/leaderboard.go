package models

// Standing - одна строка таблицы результатов.
type Standing struct {
	Position int    `json:"position"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
}

type Leaderboard struct {
	TournamentID   string           `json:"tournament_id"`
	TournamentName string           `json:"tournament_name"`
	Status         TournamentStatus `json:"status"`
	Standings      []Standing       `json:"standings"`
	// Empty is true when there are no teams or nothing has been approved yet.
	Empty bool `json:"empty"`
}
