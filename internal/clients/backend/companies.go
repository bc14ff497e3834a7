package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type companyDTO struct {
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
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

func companyToDTO(c entity.Company) companyDTO {
	return companyDTO{
		ID:         c.ID,
		LegalName:  c.LegalName,
		TradeName:  c.TradeName,
		CNPJ:       digitsOnly(c.CNPJ),
		Email:      c.Email,
		Phone:      digitsOnly(c.Phone),
		Street:     c.Address.Street,
		Number:     c.Address.Number,
		Complement: c.Address.Complement,
		District:   c.Address.District,
		City:       c.Address.City,
		State:      c.Address.State,
		CEP:        digitsOnly(c.Address.CEP),
		Headcount:  c.Headcount,
		Sector:     c.Sector,
		FoundedAt:  formatDate(c.FoundedAt),
	}
}

func companyFromDTO(d companyDTO) entity.Company {
	return entity.Company{
		ID:        d.ID,
		LegalName: d.LegalName,
		TradeName: d.TradeName,
		CNPJ:      d.CNPJ,
		Email:     d.Email,
		Phone:     d.Phone,
		Address: entity.Address{
			Street:     d.Street,
			Number:     d.Number,
			Complement: d.Complement,
			District:   d.District,
			City:       d.City,
			State:      d.State,
			CEP:        d.CEP,
		},
		Headcount: d.Headcount,
		Sector:    d.Sector,
		FoundedAt: parseDate(d.FoundedAt),
		CreatedAt: parseTime(d.CreatedAt),
		UpdatedAt: parseTime(d.UpdatedAt),
	}
}

func (c *Client) CreateCompany(ctx context.Context, company entity.Company) (entity.Company, error) {
	var out companyDTO

	err := c.do(ctx, http.MethodPost, "/api/companies", companyToDTO(company), &out)
	if err != nil {
		return entity.Company{}, fmt.Errorf("create company: %w", err)
	}

	return companyFromDTO(out), nil
}

func (c *Client) Companies(ctx context.Context) ([]entity.Company, error) {
	var out []companyDTO

	err := c.do(ctx, http.MethodGet, "/api/companies", nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	companies := make([]entity.Company, 0, len(out))
	for _, d := range out {
		companies = append(companies, companyFromDTO(d))
	}

	return companies, nil
}

func (c *Client) Company(ctx context.Context, id int64) (entity.Company, error) {
	var out companyDTO

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/companies/%d", id), nil, &out)
	if err != nil {
		return entity.Company{}, fmt.Errorf("get company %d: %w", id, err)
	}

	return companyFromDTO(out), nil
}

func (c *Client) UpdateCompany(ctx context.Context, company entity.Company) (entity.Company, error) {
	var out companyDTO

	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/companies/%d", company.ID), companyToDTO(company), &out)
	if err != nil {
		return entity.Company{}, fmt.Errorf("update company %d: %w", company.ID, err)
	}

	return companyFromDTO(out), nil
}

func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/companies/%d", id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete company %d: %w", id, err)
	}

	return nil
}
