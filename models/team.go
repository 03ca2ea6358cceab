package models

import "time"

type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CaptainID    string    `json:"captain_id"`
	TournamentID string    `json:"tournament_id"`
	CreatedAt    time.Time `json:"created_at"`
}
