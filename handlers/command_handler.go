package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/scrim-tournaments/commands"
)

// CommandHandler принимает команды от чат-шлюза.
type CommandHandler struct {
	dispatcher *commands.Dispatcher
}

func NewCommandHandler(dispatcher *commands.Dispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher}
}

type commandInput struct {
	commands.Invocation
	Args []string `json:"args"`
}

// Handle godoc
// @Summary Выполнить команду чата
// @Description Ошибки команды возвращаются текстом ответа со статусом 200.
// @Tags commands
// @Accept json
// @Produce json
// @Param body body commandInput true "Команда"
// @Success 200 {object} commands.Reply
// @Failure 400 {object} map[string]string "Некорректный запрос"
// @Security BearerAuth
// @Router /commands [post]
func (h *CommandHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input commandInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID == "" {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}

	reply := h.dispatcher.Dispatch(r.Context(), input.Invocation, input.Args)
	if err := writeJSON(w, http.StatusOK, reply, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
