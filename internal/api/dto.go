package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/internal/service"
)

// Payload types mirror the JSON the admin UI exchanges with the gateway.
// Dates travel as "YYYY-MM-DD" strings; a malformed one becomes a field
// error instead of a decode failure.

type CompanyPayload struct {
	ID         int64  `json:"id,omitempty"`
	LegalName  string `json:"legalName"`
	TradeName  string `json:"tradeName,omitempty"`
	CNPJ       string `json:"cnpj"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	CEP        string `json:"cep,omitempty"`
	Headcount  int    `json:"headcount,omitempty"`
	Sector     string `json:"sector,omitempty"`
	FoundedAt  string `json:"foundedAt,omitempty"`
}

func (p CompanyPayload) toEntity() (entity.Company, error) {
	ve := entity.NewValidationError()

	foundedAt, ok := parseOptionalDate(p.FoundedAt)
	if !ok {
		ve.Add("foundedAt", "data inválida")
	}

	if !ve.Empty() {
		return entity.Company{}, ve
	}

	return entity.Company{
		ID:        p.ID,
		LegalName: p.LegalName,
		TradeName: p.TradeName,
		CNPJ:      p.CNPJ,
		Email:     p.Email,
		Phone:     p.Phone,
		Address: entity.Address{
			Street:     p.Street,
			Number:     p.Number,
			Complement: p.Complement,
			District:   p.District,
			City:       p.City,
			State:      p.State,
			CEP:        p.CEP,
		},
		Headcount: p.Headcount,
		Sector:    p.Sector,
		FoundedAt: foundedAt,
	}, nil
}

type CompanyResponse struct {
	CompanyPayload
	CNPJMasked  string `json:"cnpjMasked,omitempty"`
	PhoneMasked string `json:"phoneMasked,omitempty"`
	CEPMasked   string `json:"cepMasked,omitempty"`
}

type UserPayload struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birthDate,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"companyId,omitempty"`
	Password  string `json:"password,omitempty"`
}

func (p UserPayload) toEntity() (entity.User, error) {
	ve := entity.NewValidationError()

	birthDate, ok := parseOptionalDate(p.BirthDate)
	if !ok {
		ve.Add("birthDate", "data inválida")
	}

	if !ve.Empty() {
		return entity.User{}, ve
	}

	return entity.User{
		ID:        p.ID,
		Name:      p.Name,
		CPF:       p.CPF,
		BirthDate: birthDate,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      entity.UserRole(p.Role),
		CompanyID: p.CompanyID,
	}, nil
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	CPFMasked string `json:"cpfMasked,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"companyId,omitempty"`
}

type ProjectPayload struct {
	ID            int64           `json:"id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate,omitempty"`
	Budget        decimal.Decimal `json:"budget,omitempty"`
	Status        string          `json:"status"`
	Priority      string          `json:"priority"`
	CompanyID     int64           `json:"companyId"`
	ResponsibleID int64           `json:"responsibleId"`
}

func (p ProjectPayload) toEntity() (entity.Project, error) {
	ve := entity.NewValidationError()

	var startDate time.Time

	if p.StartDate != "" {
		parsed, err := time.Parse(time.DateOnly, p.StartDate)
		if err != nil {
			ve.Add("startDate", "data inválida")
		} else {
			startDate = parsed
		}
	}

	endDate, ok := parseOptionalDate(p.EndDate)
	if !ok {
		ve.Add("endDate", "data inválida")
	}

	if !ve.Empty() {
		return entity.Project{}, ve
	}

	return entity.Project{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		StartDate:     startDate,
		EndDate:       endDate,
		Budget:        p.Budget,
		Status:        entity.ProjectStatus(p.Status),
		Priority:      entity.Priority(p.Priority),
		CompanyID:     p.CompanyID,
		ResponsibleID: p.ResponsibleID,
	}, nil
}

type ProjectResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate,omitempty"`
	Budget        decimal.Decimal `json:"budget"`
	Status        string          `json:"status"`
	Priority      string          `json:"priority"`
	CompanyID     int64           `json:"companyId"`
	ResponsibleID int64           `json:"responsibleId"`
}

type ActivityPayload struct {
	ID            int64  `json:"id,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	TargetDate    string `json:"targetDate,omitempty"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	ProjectID     int64  `json:"projectId"`
	ParentID      *int64 `json:"parentActivityId,omitempty"`
	ResponsibleID *int64 `json:"responsibleId,omitempty"`
}

func (p ActivityPayload) toEntity() (entity.Activity, error) {
	ve := entity.NewValidationError()

	startDate, ok := parseOptionalDate(p.StartDate)
	if !ok {
		ve.Add("startDate", "data inválida")
	}

	targetDate, ok := parseOptionalDate(p.TargetDate)
	if !ok {
		ve.Add("targetDate", "data inválida")
	}

	if !ve.Empty() {
		return entity.Activity{}, ve
	}

	return entity.Activity{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		StartDate:     startDate,
		TargetDate:    targetDate,
		Status:        entity.ActivityStatus(p.Status),
		Priority:      entity.Priority(p.Priority),
		ProjectID:     p.ProjectID,
		ParentID:      p.ParentID,
		ResponsibleID: p.ResponsibleID,
	}, nil
}

type ActivityResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	TargetDate    string `json:"targetDate,omitempty"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	Completed     bool   `json:"completed"`
	ProjectID     int64  `json:"projectId"`
	ParentID      *int64 `json:"parentActivityId,omitempty"`
	ResponsibleID *int64 `json:"responsibleId,omitempty"`
}

type ActivityNodeResponse struct {
	ActivityResponse
	SubActivities []ActivityResponse `json:"subatividades"`
}

type ProjectTreeResponse struct {
	Project    ProjectResponse        `json:"project"`
	Activities []ActivityNodeResponse `json:"atividades"`
}

func companyResponse(c entity.Company) CompanyResponse {
	return CompanyResponse{
		CompanyPayload: CompanyPayload{
			ID:         c.ID,
			LegalName:  c.LegalName,
			TradeName:  c.TradeName,
			CNPJ:       c.CNPJ,
			Email:      c.Email,
			Phone:      c.Phone,
			Street:     c.Address.Street,
			Number:     c.Address.Number,
			Complement: c.Address.Complement,
			District:   c.Address.District,
			City:       c.Address.City,
			State:      c.Address.State,
			CEP:        c.Address.CEP,
			Headcount:  c.Headcount,
			Sector:     c.Sector,
			FoundedAt:  formatOptionalDate(c.FoundedAt),
		},
		CNPJMasked:  service.FormatCNPJ(c.CNPJ),
		PhoneMasked: service.FormatPhone(c.Phone),
		CEPMasked:   service.FormatCEP(c.Address.CEP),
	}
}

func userResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CPF:       u.CPF,
		CPFMasked: service.FormatCPF(u.CPF),
		BirthDate: formatOptionalDate(u.BirthDate),
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
	}
}

func projectResponse(p entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		StartDate:     p.StartDate.Format(time.DateOnly),
		EndDate:       formatOptionalDate(p.EndDate),
		Budget:        p.Budget,
		Status:        string(p.Status),
		Priority:      string(p.Priority),
		CompanyID:     p.CompanyID,
		ResponsibleID: p.ResponsibleID,
	}
}

func activityResponse(a entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		StartDate:     formatOptionalDate(a.StartDate),
		TargetDate:    formatOptionalDate(a.TargetDate),
		Status:        string(a.Status),
		Priority:      string(a.Priority),
		Completed:     a.Completed(),
		ProjectID:     a.ProjectID,
		ParentID:      a.ParentID,
		ResponsibleID: a.ResponsibleID,
	}
}

func treeResponse(t entity.ProjectTree) ProjectTreeResponse {
	nodes := make([]ActivityNodeResponse, 0, len(t.Activities))

	for _, n := range t.Activities {
		node := ActivityNodeResponse{
			ActivityResponse: activityResponse(n.Activity),
			SubActivities:    make([]ActivityResponse, 0, len(n.SubActivities)),
		}

		for _, sub := range n.SubActivities {
			node.SubActivities = append(node.SubActivities, activityResponse(sub.Activity))
		}

		nodes = append(nodes, node)
	}

	return ProjectTreeResponse{
		Project:    projectResponse(t.Project),
		Activities: nodes,
	}
}

func parseOptionalDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, false
	}

	return &t, true
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.DateOnly)
}
