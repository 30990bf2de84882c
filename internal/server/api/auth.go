// HTTP-хендлеры регистрации, логина и информации о токене
package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя.
//
// @Summary      Register user
// @Description  Creates a user and returns it with an access token valid for 7 days.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      201 {object} models.AuthResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} models.ErrorResponse "User already exists"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req shared.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res, err := h.Svc.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, shared.AuthResponse{
		Success: true,
		User:    res.User.Public(),
		Token:   res.Token,
	})
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// @Summary      Login
// @Description  Checks credentials and returns the user with a fresh access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.AuthResponse
// @Failure      400 {object} models.ErrorResponse "Missing fields or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Invalid credentials"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req shared.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, shared.AuthResponse{
		Success: true,
		User:    res.User.Public(),
		Token:   res.Token,
	})
}

// Me возвращает то, что сервер видит в предъявленном токене.
//
// @Summary      Current identity
// @Description  Returns the identity decoded from the bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.MeResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	if id == nil {
		h.WriteError(w, r, serr.ErrUnauthorized)
		return
	}

	WriteJSON(w, http.StatusOK, shared.MeResponse{
		Success:   true,
		User:      shared.MeUser{ID: id.UserID, Email: id.Email},
		IssuedAt:  id.IssuedAt,
		ExpiresAt: id.ExpiresAt,
	})
}
