package api

import (
	"encoding/json"
	"net/http"
)

// Companies lists registered companies
// @Summary List companies
// @Tags companies
// @Produce json
// @Success 200 {array} CompanyResponse
// @Router /companies [get]
// @Security BearerAuth
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companies, err := h.s.Companies(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível listar as empresas")
		return
	}

	resp := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		resp = append(resp, companyResponse(c))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// CreateCompany registers a company
// @Summary Create company
// @Tags companies
// @Accept json
// @Produce json
// @Param CompanyPayload body CompanyPayload true "Company"
// @Success 201 {object} CompanyResponse
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /companies [post]
// @Security BearerAuth
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload CompanyPayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	company, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar a empresa")
		return
	}

	created, err := h.s.CreateCompany(ctx, company)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível criar a empresa")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, companyResponse(created))
}

// Company returns one company
// @Summary Get company
// @Tags companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} CompanyResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /companies/{id} [get]
// @Security BearerAuth
func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	company, err := h.s.Company(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível carregar a empresa")
		return
	}

	SendJSON(ctx, w, http.StatusOK, companyResponse(company))
}

// UpdateCompany replaces a company's data
// @Summary Update company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param CompanyPayload body CompanyPayload true "Company"
// @Success 200 {object} CompanyResponse
// @Failure 422 {object} ErrorResponse "Validation errors"
// @Router /companies/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	var payload CompanyPayload

	err = json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	company, err := payload.toEntity()
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar a empresa")
		return
	}

	company.ID = id

	updated, err := h.s.UpdateCompany(ctx, company)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível atualizar a empresa")
		return
	}

	SendJSON(ctx, w, http.StatusOK, companyResponse(updated))
}

// DeleteCompany removes a company
// @Summary Delete company
// @Tags companies
// @Param id path int true "Company ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /companies/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		sendServiceErr(ctx, w, err, "Identificador inválido")
		return
	}

	err = h.s.DeleteCompany(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível excluir a empresa")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
