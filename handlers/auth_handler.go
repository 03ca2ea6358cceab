package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/scrim-tournaments/services"
)

type AuthHandler struct {
	auth services.AdminAuth
}

func NewAuthHandler(auth services.AdminAuth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginInput struct {
	Password string `json:"password"`
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginInput true "Пароль администратора"
// @Success 200 {object} services.IssuedToken
// @Failure 400 {object} map[string]string "Некорректный запрос"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Failure 403 {object} map[string]string "Вход не настроен"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	token, err := h.auth.Login(r.Context(), input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, token, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
