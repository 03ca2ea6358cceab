package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	templates   services.TemplateCatalog
	tournaments services.TournamentRegistry
	roster      services.TeamRoster
	leaderboard services.LeaderboardBuilder
}

func NewTournamentHandler(
	templates services.TemplateCatalog,
	tournaments services.TournamentRegistry,
	roster services.TeamRoster,
	leaderboard services.LeaderboardBuilder,
) *TournamentHandler {
	return &TournamentHandler{
		templates:   templates,
		tournaments: tournaments,
		roster:      roster,
		leaderboard: leaderboard,
	}
}

// ListTemplates godoc
// @Summary Шаблоны подсчета очков
// @Tags templates
// @Produce json
// @Success 200 {object} map[string]interface{} "templates"
// @Security BearerAuth
// @Router /templates [get]
func (h *TournamentHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.ListTemplates(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"templates": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTemplate godoc
// @Summary Создать шаблон
// @Tags templates
// @Accept json
// @Produce json
// @Param body body services.CreateTemplateInput true "Шаблон"
// @Success 201 {object} map[string]interface{} "template"
// @Failure 409 {object} map[string]string "Имя занято"
// @Failure 422 {object} map[string]string "Ошибка валидации"
// @Security BearerAuth
// @Router /templates [post]
func (h *TournamentHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTemplateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tpl, err := h.templates.CreateTemplate(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"template": tpl}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTournaments godoc
// @Summary Турниры
// @Tags tournaments
// @Produce json
// @Param scope_id query string false "Только турниры этого сервера"
// @Success 200 {object} map[string]interface{} "tournaments"
// @Security BearerAuth
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	list, err := h.tournaments.ListTournaments(r.Context(), r.URL.Query().Get("scope_id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Турнир по ID
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 404 {object} map[string]string "Не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournaments.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateStatusInput struct {
	Status models.TournamentStatus `json:"status"`
}

// UpdateStatus godoc
// @Summary Сменить статус турнира
// @Description registration -> active -> completed
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body updateStatusInput true "Новый статус"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 404 {object} map[string]string "Не найден"
// @Failure 409 {object} map[string]string "Недопустимый переход"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/status [patch]
func (h *TournamentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input updateStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	id := chi.URLParam(r, "tournamentID")

	var (
		t   *models.Tournament
		err error
	)
	switch input.Status {
	case models.StatusActive:
		t, err = h.tournaments.StartTournament(r.Context(), id)
	case models.StatusCompleted:
		t, err = h.tournaments.CompleteTournament(r.Context(), id)
	case "":
		badRequestResponse(w, r, errors.New("status is required"))
		return
	default:
		badRequestResponse(w, r, fmt.Errorf("cannot move a tournament to status %q", input.Status))
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Leaderboard godoc
// @Summary Таблица турнира
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} models.Leaderboard
// @Failure 404 {object} map[string]string "Не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/leaderboard [get]
func (h *TournamentHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboard.Build(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, board, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Teams godoc
// @Summary Команды турнира
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "teams"
// @Failure 404 {object} map[string]string "Не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [get]
func (h *TournamentHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.roster.ListTeams(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
