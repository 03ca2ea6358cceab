package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
)

// SubmissionWorkflow owns submissions and the pending -> approved/rejected transition.
//
// Approving an already approved submission (or rejecting an already rejected
// one) is a no-op that returns the submission unchanged. Moving between the
// two terminal states is ErrSubmissionAlreadyReviewed.
type SubmissionWorkflow interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Submission, error)
	Approve(ctx context.Context, id string) (*models.Submission, error)
	Reject(ctx context.Context, id string) (*models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]SubmissionView, error)
}

type SubmitInput struct {
	TournamentID string `json:"tournament_id"`
	CaptainID    string `json:"captain_id"`
	MatchNumber  int    `json:"match_number"`
	Rank         int    `json:"rank"`
	Kills        int    `json:"kills"`
	ProofRef     string `json:"proof_ref"`
}

type SubmissionFilter struct {
	Status       models.SubmissionStatus // пусто = все
	TournamentID string
}

// SubmissionView - заявка вместе с командой и турниром для очереди модерации.
type SubmissionView struct {
	models.Submission
	TeamName     string `json:"team_name"`
	TournamentID string `json:"tournament_id"`
}

type submissionWorkflow struct {
	store   *repositories.StateStore
	logger  *slog.Logger
	metrics *Metrics
}

func NewSubmissionWorkflow(store *repositories.StateStore, logger *slog.Logger, metrics *Metrics) SubmissionWorkflow {
	return &submissionWorkflow{store: store, logger: logger, metrics: metrics}
}

func validateSubmitInput(input SubmitInput, matchCount int) error {
	if input.MatchNumber < 1 {
		return validationErrorf("match number must be >= 1, got %d", input.MatchNumber)
	}
	if matchCount > 0 && input.MatchNumber > matchCount {
		return validationErrorf("match number %d exceeds the tournament's %d matches", input.MatchNumber, matchCount)
	}
	if input.Rank < 1 {
		return validationErrorf("rank must be >= 1, got %d", input.Rank)
	}
	if input.Kills < 0 {
		return validationErrorf("kills must be >= 0, got %d", input.Kills)
	}
	if strings.TrimSpace(input.ProofRef) == "" {
		return validationErrorf("proof is required")
	}
	return nil
}

func (s *submissionWorkflow) Submit(ctx context.Context, input SubmitInput) (*models.Submission, error) {
	var created models.Submission
	err := s.store.Update(ctx, func(doc *models.Document) error {
		t := doc.TournamentByID(input.TournamentID)
		if t == nil {
			return ErrTournamentNotFound
		}
		team := doc.TeamByCaptain(input.CaptainID, t.ID)
		if team == nil {
			return ErrNotCaptain
		}
		if err := validateSubmitInput(input, t.MatchCount); err != nil {
			return err
		}
		if t.Status != models.StatusActive {
			return fmt.Errorf("%w (status: %s)", ErrTournamentNotActive, t.Status)
		}
		for _, existing := range doc.Submissions {
			if existing.TeamID == team.ID && existing.MatchNumber == input.MatchNumber &&
				existing.Status != models.SubmissionRejected {
				return fmt.Errorf("%w (match %d, submission %s is %s)", ErrDuplicateSubmission, input.MatchNumber, existing.ID, existing.Status)
			}
		}

		created = models.Submission{
			ID:          newID(),
			TeamID:      team.ID,
			MatchNumber: input.MatchNumber,
			Rank:        input.Rank,
			Kills:       input.Kills,
			ProofRef:    strings.TrimSpace(input.ProofRef),
			Status:      models.SubmissionPending,
			SubmittedAt: now(),
		}
		doc.Submissions = append(doc.Submissions, created)
		return nil
	})
	err = persistError(err)
	s.metrics.mutation("submission_create", err)
	if err != nil {
		return nil, err
	}
	s.metrics.submission("submitted")

	s.logger.InfoContext(ctx, "result submitted",
		slog.String("submission_id", created.ID),
		slog.String("team_id", created.TeamID),
		slog.Int("match", created.MatchNumber),
		slog.Int("rank", created.Rank),
		slog.Int("kills", created.Kills),
	)
	return &created, nil
}

func (s *submissionWorkflow) Approve(ctx context.Context, id string) (*models.Submission, error) {
	return s.review(ctx, id, models.SubmissionApproved)
}

func (s *submissionWorkflow) Reject(ctx context.Context, id string) (*models.Submission, error) {
	return s.review(ctx, id, models.SubmissionRejected)
}

func (s *submissionWorkflow) review(ctx context.Context, id string, target models.SubmissionStatus) (*models.Submission, error) {
	operation := "submission_" + string(target)
	var (
		result  models.Submission
		changed bool
	)
	err := s.store.Update(ctx, func(doc *models.Document) error {
		sub := doc.SubmissionByID(id)
		if sub == nil {
			return ErrSubmissionNotFound
		}
		switch sub.Status {
		case target:
			result = sub.Clone()
			return repositories.ErrSkipCommit
		case models.SubmissionPending:
			ts := now()
			sub.Status = target
			sub.ReviewedAt = &ts
			result = sub.Clone()
			changed = true
			return nil
		default:
			return fmt.Errorf("%w (status: %s)", ErrSubmissionAlreadyReviewed, sub.Status)
		}
	})
	err = persistError(err)
	s.metrics.mutation(operation, err)
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			s.logger.ErrorContext(ctx, "review not recorded", slog.String("submission_id", id), slog.Any("error", err))
		}
		return nil, err
	}

	if changed {
		s.metrics.submission(string(target))
		s.logger.InfoContext(ctx, "submission reviewed",
			slog.String("submission_id", result.ID),
			slog.String("status", string(result.Status)),
		)
	}
	return &result, nil
}

func (s *submissionWorkflow) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var found models.Submission
	err := s.store.View(func(doc *models.Document) error {
		sub := doc.SubmissionByID(id)
		if sub == nil {
			return ErrSubmissionNotFound
		}
		found = sub.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *submissionWorkflow) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]SubmissionView, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, validationErrorf("unknown submission status %q", filter.Status)
	}
	out := make([]SubmissionView, 0)
	err := s.store.View(func(doc *models.Document) error {
		if filter.TournamentID != "" && doc.TournamentByID(filter.TournamentID) == nil {
			return ErrTournamentNotFound
		}
		for _, sub := range doc.Submissions {
			if filter.Status != "" && sub.Status != filter.Status {
				continue
			}
			view := SubmissionView{Submission: sub.Clone()}
			if team := doc.TeamByID(sub.TeamID); team != nil {
				view.TeamName = team.Name
				view.TournamentID = team.TournamentID
			}
			if filter.TournamentID != "" && view.TournamentID != filter.TournamentID {
				continue
			}
			out = append(out, view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
