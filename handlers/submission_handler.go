package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/scrim-tournaments/middleware"
	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/services"
	"github.com/go-chi/chi/v5"
)

// SubmissionHandler - очередь модерации результатов.
type SubmissionHandler struct {
	workflow services.SubmissionWorkflow
}

func NewSubmissionHandler(workflow services.SubmissionWorkflow) *SubmissionHandler {
	return &SubmissionHandler{workflow: workflow}
}

// List godoc
// @Summary Список заявок с результатами
// @Tags submissions
// @Produce json
// @Param status query string false "pending | approved | rejected"
// @Param tournament_id query string false "ID турнира"
// @Success 200 {object} map[string]interface{} "submissions"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 422 {object} map[string]string "Неизвестный статус"
// @Security BearerAuth
// @Router /submissions [get]
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.SubmissionFilter{
		Status:       models.SubmissionStatus(query.Get("status")),
		TournamentID: query.Get("tournament_id"),
	}

	list, err := h.workflow.ListSubmissions(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"submissions": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Заявка по ID
// @Tags submissions
// @Produce json
// @Param submissionID path string true "Submission ID"
// @Success 200 {object} map[string]interface{} "submission"
// @Failure 404 {object} map[string]string "Не найдена"
// @Security BearerAuth
// @Router /submissions/{submissionID} [get]
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.workflow.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"submission": sub}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Approve godoc
// @Summary Одобрить результат
// @Description Повторное одобрение ничего не меняет. Одобрить отклоненную заявку нельзя (409).
// @Tags submissions
// @Produce json
// @Param submissionID path string true "Submission ID"
// @Success 200 {object} map[string]interface{} "submission"
// @Failure 404 {object} map[string]string "Не найдена"
// @Failure 409 {object} map[string]string "Уже рассмотрена"
// @Failure 503 {object} map[string]string "Изменение не сохранено"
// @Security BearerAuth
// @Router /submissions/{submissionID}/approve [post]
func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.workflow.Approve)
}

// Reject godoc
// @Summary Отклонить результат
// @Tags submissions
// @Produce json
// @Param submissionID path string true "Submission ID"
// @Success 200 {object} map[string]interface{} "submission"
// @Failure 404 {object} map[string]string "Не найдена"
// @Failure 409 {object} map[string]string "Уже рассмотрена"
// @Failure 503 {object} map[string]string "Изменение не сохранено"
// @Security BearerAuth
// @Router /submissions/{submissionID}/reject [post]
func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.workflow.Reject)
}

func (h *SubmissionHandler) review(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) (*models.Submission, error)) {
	id := chi.URLParam(r, "submissionID")
	sub, err := action(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	reviewer, _ := middleware.GetSubjectFromContext(r.Context())
	middleware.LoggerFromContext(r.Context()).InfoContext(r.Context(), "submission reviewed via admin panel",
		"submission_id", sub.ID, "status", sub.Status, "reviewer", reviewer)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"submission": sub}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
