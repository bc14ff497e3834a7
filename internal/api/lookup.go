package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/internal/service"
)

type AddressResponse struct {
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	CEP        string `json:"cep"`
	CEPMasked  string `json:"cepMasked,omitempty"`
}

type RegistryResponse struct {
	LegalName string          `json:"legalName"`
	TradeName string          `json:"tradeName,omitempty"`
	Address   AddressResponse `json:"address"`
}

type AssistRequest struct {
	Message string `json:"message"`
}

type AssistResponse struct {
	Reply string `json:"reply"`
}

type DashboardResponse struct {
	Companies       int               `json:"companies"`
	Users           int               `json:"users"`
	Projects        int               `json:"projects"`
	ActiveProjects  int               `json:"activeProjects"`
	RecentProjects  []ProjectResponse `json:"recentProjects"`
	ProjectsByState map[string]int    `json:"projectsByState"`
}

// LookupCEP resolves a postal code through ViaCEP
// @Summary Look up address by CEP
// @Tags lookup
// @Produce json
// @Param cep path string true "CEP, masked or bare digits"
// @Success 200 {object} AddressResponse
// @Failure 404 {object} ErrorResponse "CEP not found"
// @Failure 422 {object} ErrorResponse "Malformed CEP"
// @Router /lookup/cep/{cep} [get]
// @Security BearerAuth
func (h *Handler) LookupCEP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address, err := h.s.LookupCEP(ctx, chi.URLParam(r, "cep"))
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível consultar o CEP")
		return
	}

	SendJSON(ctx, w, http.StatusOK, addressResponse(address))
}

// LookupCNPJ resolves a company registration through the public registry
// @Summary Look up company by CNPJ
// @Tags lookup
// @Produce json
// @Param cnpj path string true "CNPJ, masked or bare digits"
// @Success 200 {object} RegistryResponse
// @Failure 404 {object} ErrorResponse "CNPJ not found"
// @Failure 422 {object} ErrorResponse "Malformed CNPJ"
// @Router /lookup/cnpj/{cnpj} [get]
// @Security BearerAuth
func (h *Handler) LookupCNPJ(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, err := h.s.LookupCNPJ(ctx, chi.URLParam(r, "cnpj"))
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível consultar o CNPJ")
		return
	}

	SendJSON(ctx, w, http.StatusOK, RegistryResponse{
		LegalName: entry.LegalName,
		TradeName: entry.TradeName,
		Address:   addressResponse(entry.Address),
	})
}

// Assistant relays a chat message to the assistant provider
// @Summary Ask the assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Param AssistRequest body AssistRequest true "Message"
// @Success 200 {object} AssistResponse
// @Failure 502 {object} ErrorResponse "Provider unavailable"
// @Router /assistant [post]
// @Security BearerAuth
func (h *Handler) Assistant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AssistRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "JSON inválido")
		return
	}

	reply, err := h.s.Assist(ctx, req.Message)
	if err != nil {
		sendServiceErr(ctx, w, err, "Assistente indisponível no momento")
		return
	}

	SendJSON(ctx, w, http.StatusOK, AssistResponse{Reply: reply})
}

// Dashboard returns the landing-page aggregates
// @Summary Dashboard aggregates
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
// @Security BearerAuth
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.s.Dashboard(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err, "Não foi possível carregar o painel")
		return
	}

	recent := make([]ProjectResponse, 0, len(d.RecentProjects))
	for _, p := range d.RecentProjects {
		recent = append(recent, projectResponse(p))
	}

	byState := make(map[string]int, len(d.ProjectsByState))
	for status, n := range d.ProjectsByState {
		byState[string(status)] = n
	}

	SendJSON(ctx, w, http.StatusOK, DashboardResponse{
		Companies:       d.Companies,
		Users:           d.Users,
		Projects:        d.Projects,
		ActiveProjects:  d.ActiveProjects,
		RecentProjects:  recent,
		ProjectsByState: byState,
	})
}

func addressResponse(a entity.Address) AddressResponse {
	return AddressResponse{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		CEP:        a.CEP,
		CEPMasked:  service.FormatCEP(a.CEP),
	}
}
