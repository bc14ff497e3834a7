package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4/request"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Login authenticates against the backend and opens a durable session
// @Summary Log in
// @Tags session
// @Accept json
// @Produce json
// @Param LoginRequest body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 422 {object} ErrorResponse "Missing fields"
// @Router /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	session, err := h.s.Login(ctx, req.Email, req.Password)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível entrar")
		return
	}

	SendJSON(ctx, w, http.StatusOK, SessionResponse{
		Token:     session.Token,
		User:      userResponse(session.User),
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout closes the current session
// @Summary Log out
// @Tags session
// @Success 204
// @Router /logout [post]
// @Security BearerAuth
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := request.BearerExtractor{}.ExtractToken(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Token ausente ou inválido")
		return
	}

	err = h.s.Logout(ctx, token)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível sair")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session returns the restored session of the current bearer token
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "No session"
// @Router /session [get]
// @Security BearerAuth
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromCtx(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Sessão não encontrada")
		return
	}

	SendJSON(ctx, w, http.StatusOK, SessionResponse{
		Token:     entity.TokenFromCtx(ctx),
		User:      userResponse(session.User),
		ExpiresAt: session.ExpiresAt,
	})
}
