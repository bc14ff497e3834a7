package service

import (
	"context"
	"crypto/rsa"

	"github.com/gestaoplus/admin-gateway/internal/clients/cnpjws"
	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type Backend interface {
	Login(ctx context.Context, email, password string) (string, entity.User, error)

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
	ProjectActivities(ctx context.Context, projectID int64) ([]entity.Activity, error)
	Activity(ctx context.Context, id int64) (entity.Activity, error)
	UpdateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error
	CompleteProject(ctx context.Context, projectID int64) (entity.Project, []entity.Activity, error)
}

type SessionRepository interface {
	SaveSession(ctx context.Context, s entity.Session) error
	SessionByToken(ctx context.Context, token string) (entity.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	CleanExpired(ctx context.Context) error
}

type AuditProducer interface {
	SendAudit(ctx context.Context, entityName, action string, entityID, actorID int64)
}

type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (entity.Address, error)
}

type CNPJLookup interface {
	Lookup(ctx context.Context, cnpj string) (cnpjws.RegistryEntry, error)
}

type AssistantClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	backend   Backend
	sessions  SessionRepository
	producer  AuditProducer
	cep       CEPLookup
	registry  CNPJLookup
	assistant AssistantClient
	tokenKey  *rsa.PublicKey
}

func New(
	backend Backend,
	sessions SessionRepository,
	producer AuditProducer,
	cep CEPLookup,
	registry CNPJLookup,
	assistant AssistantClient,
	tokenKey *rsa.PublicKey,
) *Service {
	return &Service{
		backend:   backend,
		sessions:  sessions,
		producer:  producer,
		cep:       cep,
		registry:  registry,
		assistant: assistant,
		tokenKey:  tokenKey,
	}
}

func (s *Service) audit(ctx context.Context, entityName, action string, entityID int64) {
	if s.producer == nil {
		return
	}

	var actorID int64
	if user, err := entity.UserFromCtx(ctx); err == nil {
		actorID = user.ID
	}

	s.producer.SendAudit(ctx, entityName, action, entityID, actorID)
}
