package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func validateCompany(c entity.Company) error {
	ve := entity.NewValidationError()

	if strings.TrimSpace(c.LegalName) == "" {
		ve.Add("legalName", "obrigatório")
	}

	if c.CNPJ == "" {
		ve.Add("cnpj", "obrigatório")
	} else if !ValidCNPJ(c.CNPJ) {
		ve.Add("cnpj", "CNPJ inválido")
	}

	if c.Phone != "" && !ValidPhone(c.Phone) {
		ve.Add("phone", "telefone inválido")
	}

	if c.Address.CEP != "" && !ValidCEP(c.Address.CEP) {
		ve.Add("cep", "CEP inválido")
	}

	if c.Headcount < 0 {
		ve.Add("headcount", "não pode ser negativo")
	}

	if ve.Empty() {
		return nil
	}

	return ve
}

func (s *Service) CreateCompany(ctx context.Context, company entity.Company) (entity.Company, error) {
	if err := requireRole(ctx, entity.RoleAdmin); err != nil {
		return entity.Company{}, err
	}

	if err := validateCompany(company); err != nil {
		return entity.Company{}, err
	}

	created, err := s.backend.CreateCompany(ctx, company)
	if err != nil {
		return entity.Company{}, fmt.Errorf("create company: %w", err)
	}

	s.audit(ctx, "company", "create", created.ID)

	return created, nil
}

func (s *Service) Companies(ctx context.Context) ([]entity.Company, error) {
	return s.backend.Companies(ctx)
}

func (s *Service) Company(ctx context.Context, id int64) (entity.Company, error) {
	return s.backend.Company(ctx, id)
}

func (s *Service) UpdateCompany(ctx context.Context, company entity.Company) (entity.Company, error) {
	if err := requireRole(ctx, entity.RoleAdmin); err != nil {
		return entity.Company{}, err
	}

	if err := validateCompany(company); err != nil {
		return entity.Company{}, err
	}

	updated, err := s.backend.UpdateCompany(ctx, company)
	if err != nil {
		return entity.Company{}, fmt.Errorf("update company: %w", err)
	}

	s.audit(ctx, "company", "update", updated.ID)

	return updated, nil
}

func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	if err := requireRole(ctx, entity.RoleAdmin); err != nil {
		return err
	}

	err := s.backend.DeleteCompany(ctx, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}

	s.audit(ctx, "company", "delete", id)

	return nil
}

func requireRole(ctx context.Context, role entity.UserRole) error {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return err
	}

	if !user.Role.AtLeast(role) {
		return entity.ErrForbidden
	}

	return nil
}
