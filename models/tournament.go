package models

import "time"

// TournamentStatus - статусы жизненного цикла турнира.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
)

// Tournament представляет турнир внутри одного scope (гильдии/сообщества).
type Tournament struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	TemplateID string           `json:"template_id"`
	MatchCount int              `json:"match_count"`
	Status     TournamentStatus `json:"status"`
	ScopeID    string           `json:"scope_id"`
	CreatedAt  time.Time        `json:"created_at"`
	StartedAt  *time.Time       `json:"started_at,omitempty"`
	EndedAt    *time.Time       `json:"ended_at,omitempty"`
}

// IsOpen reports whether the tournament still occupies its scope.
func (t *Tournament) IsOpen() bool {
	return t.Status == StatusRegistration || t.Status == StatusActive
}

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusRegistration, StatusActive, StatusCompleted:
		return true
	}
	return false
}

func (t Tournament) Clone() Tournament {
	out := t
	if t.StartedAt != nil {
		v := *t.StartedAt
		out.StartedAt = &v
	}
	if t.EndedAt != nil {
		v := *t.EndedAt
		out.EndedAt = &v
	}
	return out
}
