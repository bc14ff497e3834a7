package api

import (
	"context"
	"net/http"

	"github.com/gestaoplus/admin-gateway/internal/clients/cnpjws"
	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/internal/service"
)

// @title Admin Gateway API
// @version 1.0
// @description Gateway between the admin browser UI and the business-management backend
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Service interface {
	Login(ctx context.Context, email, password string) (entity.Session, error)
	Logout(ctx context.Context, token string) error

	CreateCompany(ctx context.Context, company entity.Company) (entity.Company, error)
	Companies(ctx context.Context) ([]entity.Company, error)
	Company(ctx context.Context, id int64) (entity.Company, error)
	UpdateCompany(ctx context.Context, company entity.Company) (entity.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, user entity.User, password string) (entity.User, error)
	Users(ctx context.Context) ([]entity.User, error)
	User(ctx context.Context, id int64) (entity.User, error)
	UpdateUser(ctx context.Context, user entity.User, password string) (entity.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateProject(ctx context.Context, project entity.Project) (entity.Project, error)
	Projects(ctx context.Context) ([]entity.Project, error)
	Project(ctx context.Context, id int64) (entity.Project, error)
	UpdateProject(ctx context.Context, project entity.Project) (entity.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	CreateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error)
	Activity(ctx context.Context, id int64) (entity.Activity, error)
	ProjectActivities(ctx context.Context, projectID int64) ([]entity.Activity, error)
	UpdateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error)
	ProjectTree(ctx context.Context, projectID int64) (entity.ProjectTree, error)
	ToggleActivity(ctx context.Context, id int64) (entity.ProjectTree, error)
	DeleteActivity(ctx context.Context, id int64) (entity.ProjectTree, error)

	LookupCEP(ctx context.Context, cep string) (entity.Address, error)
	LookupCNPJ(ctx context.Context, cnpj string) (cnpjws.RegistryEntry, error)
	Assist(ctx context.Context, message string) (string, error)
	Dashboard(ctx context.Context) (service.Dashboard, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s: s,
	}
}

// HealthHandler reports liveness
// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
