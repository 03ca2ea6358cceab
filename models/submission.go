package models

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// Submission - результат матча, присланный капитаном. Учитывается только после approve.
type Submission struct {
	ID          string           `json:"id"`
	TeamID      string           `json:"team_id"`
	MatchNumber int              `json:"match_number"`
	Rank        int              `json:"rank"`
	Kills       int              `json:"kills"`
	ProofRef    string           `json:"proof_ref"`
	Status      SubmissionStatus `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty"`
}

func (s Submission) Clone() Submission {
	out := s
	if s.ReviewedAt != nil {
		t := *s.ReviewedAt
		out.ReviewedAt = &t
	}
	return out
}
