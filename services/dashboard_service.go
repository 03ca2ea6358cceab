package services

import (
	"context"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	store *repositories.StateStore
}

func NewDashboardService(store *repositories.StateStore) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.store.View(func(doc *models.Document) error {
		stats.TemplatesTotal = len(doc.Templates)
		stats.TournamentsTotal = len(doc.Tournaments)
		stats.TeamsTotal = len(doc.Teams)
		for _, t := range doc.Tournaments {
			switch t.Status {
			case models.StatusRegistration:
				stats.RegistrationTournaments++
			case models.StatusActive:
				stats.ActiveTournaments++
			case models.StatusCompleted:
				stats.CompletedTournaments++
			}
		}
		for _, sub := range doc.Submissions {
			switch sub.Status {
			case models.SubmissionPending:
				stats.PendingSubmissions++
			case models.SubmissionApproved:
				stats.ApprovedSubmissions++
			case models.SubmissionRejected:
				stats.RejectedSubmissions++
			}
		}
		return nil
	})
	return stats, err
}
