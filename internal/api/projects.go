package api

import (
	"encoding/json"
	"net/http"
)

// Projects lists projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} ProjectResponse
// @Router /projects [get]
// @Security BearerAuth
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.s.Projects(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível listar os projetos")
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, projectResponse(p))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// CreateProject registers a project
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param ProjectPayload body ProjectPayload true "Project"
// @Success 201 {object} ProjectResponse
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /projects [post]
// @Security BearerAuth
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload ProjectPayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	project, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar o projeto")
		return
	}

	created, err := h.s.CreateProject(ctx, project)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar o projeto")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, projectResponse(created))
}

// Project returns one project
// @Summary Get project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /projects/{id} [get]
// @Security BearerAuth
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	project, err := h.s.Project(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível carregar o projeto")
		return
	}

	SendJSON(ctx, w, http.StatusOK, projectResponse(project))
}

// UpdateProject replaces a project's data
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param ProjectPayload body ProjectPayload true "Project"
// @Success 200 {object} ProjectResponse
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /projects/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	var payload ProjectPayload

	err = json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	project, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar o projeto")
		return
	}

	project.ID = id

	updated, err := h.s.UpdateProject(ctx, project)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar o projeto")
		return
	}

	SendJSON(ctx, w, http.StatusOK, projectResponse(updated))
}

// DeleteProject removes a project
// @Summary Delete project
// @Tags projects
// @Param id path int true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /projects/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	err = h.s.DeleteProject(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível excluir o projeto")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ProjectActivities lists a project's activities flat
// @Summary List project activities
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} ActivityResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /projects/{id}/activities [get]
// @Security BearerAuth
func (h *Handler) ProjectActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	activities, err := h.s.ProjectActivities(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível listar as atividades")
		return
	}

	resp := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, activityResponse(a))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// ProjectTree returns a project with its two-level activity tree
// @Summary Get project tree
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} ProjectTreeResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /projects/{id}/complete [get]
// @Security BearerAuth
func (h *Handler) ProjectTree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	tree, err := h.s.ProjectTree(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível carregar o projeto completo")
		return
	}

	SendJSON(ctx, w, http.StatusOK, treeResponse(tree))
}
