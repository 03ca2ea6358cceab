package models

// DashboardStats - сводка для админки.
type DashboardStats struct {
	TemplatesTotal          int `json:"templates_total"`
	TournamentsTotal        int `json:"tournaments_total"`
	RegistrationTournaments int `json:"registration_tournaments"`
	ActiveTournaments       int `json:"active_tournaments"`
	CompletedTournaments    int `json:"completed_tournaments"`
	TeamsTotal              int `json:"teams_total"`
	PendingSubmissions      int `json:"pending_submissions"`
	ApprovedSubmissions     int `json:"approved_submissions"`
	RejectedSubmissions     int `json:"rejected_submissions"`
}
