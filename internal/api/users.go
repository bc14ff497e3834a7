package api

import (
	"encoding/json"
	"net/http"
)

// Users lists registered users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Router /users [get]
// @Security BearerAuth
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.s.Users(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível listar os usuários")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse(u))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// CreateUser registers a user
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param UserPayload body UserPayload true "User"
// @Success 201 {object} UserResponse
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /users [post]
// @Security BearerAuth
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload UserPayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	user, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar o usuário")
		return
	}

	created, err := h.s.CreateUser(ctx, user, payload.Password)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar o usuário")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, userResponse(created))
}

// User returns one user
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [get]
// @Security BearerAuth
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	user, err := h.s.User(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível carregar o usuário")
		return
	}

	SendJSON(ctx, w, http.StatusOK, userResponse(user))
}

// UpdateUser replaces a user's data
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param UserPayload body UserPayload true "User"
// @Success 200 {object} UserResponse
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /users/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	var payload UserPayload

	err = json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	user, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar o usuário")
		return
	}

	user.ID = id

	updated, err := h.s.UpdateUser(ctx, user, payload.Password)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar o usuário")
		return
	}

	SendJSON(ctx, w, http.StatusOK, userResponse(updated))
}

// DeleteUser removes a user
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	err = h.s.DeleteUser(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível excluir o usuário")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
