package api

import (
	"encoding/json"
	"net/http"
)

// CreateActivity registers an activity or sub-activity
// @Summary Create activity
// @Tags activities
// @Accept json
// @Produce json
// @Param ActivityPayload body ActivityPayload true "Activity"
// @Success 201 {object} ActivityResponse
// @Failure 422 {object} ErrorResponse "Validation errors or nesting too deep"
// @Router /activities [post]
// @Security BearerAuth
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload ActivityPayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	activity, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar a atividade")
		return
	}

	created, err := h.s.CreateActivity(ctx, activity)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar a atividade")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, activityResponse(created))
}

// Activity returns one activity
// @Summary Get activity
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} ActivityResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /activities/{id} [get]
// @Security BearerAuth
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	activity, err := h.s.Activity(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível carregar a atividade")
		return
	}

	SendJSON(ctx, w, http.StatusOK, activityResponse(activity))
}

// UpdateActivity replaces an activity's data
// @Summary Update activity
// @Tags activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param ActivityPayload body ActivityPayload true "Activity"
// @Success 200 {object} ActivityResponse
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /activities/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	var payload ActivityPayload

	err = json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	activity, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar a atividade")
		return
	}

	activity.ID = id

	updated, err := h.s.UpdateActivity(ctx, activity)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar a atividade")
		return
	}

	SendJSON(ctx, w, http.StatusOK, activityResponse(updated))
}

// ToggleActivity flips an activity between completed and its previous
// state, then returns the refreshed tree so the client swaps state only
// after the change is durable.
// @Summary Toggle activity completion
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} ProjectTreeResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /activities/{id}/toggle [patch]
// @Security BearerAuth
func (h *Handler) ToggleActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	tree, err := h.s.ToggleActivity(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível alterar a atividade")
		return
	}

	SendJSON(ctx, w, http.StatusOK, treeResponse(tree))
}

// DeleteActivity removes an activity and returns the refreshed tree
// @Summary Delete activity
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} ProjectTreeResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /activities/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	tree, err := h.s.DeleteActivity(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível excluir a atividade")
		return
	}

	SendJSON(ctx, w, http.StatusOK, treeResponse(tree))
}
