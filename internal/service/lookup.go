package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestaoplus/admin-gateway/internal/clients/cnpjws"
	"github.com/gestaoplus/admin-gateway/internal/entity"
)

// LookupCEP resolves a postal code to address fields for form pre-fill.
func (s *Service) LookupCEP(ctx context.Context, cep string) (entity.Address, error) {
	if !ValidCEP(cep) {
		ve := entity.NewValidationError()
		ve.Add("cep", "CEP inválido")

		return entity.Address{}, ve
	}

	addr, err := s.cep.Lookup(ctx, Digits(cep))
	if err != nil {
		return entity.Address{}, fmt.Errorf("cep lookup: %w", err)
	}

	return addr, nil
}

// LookupCNPJ resolves a tax id to registry data for form pre-fill.
func (s *Service) LookupCNPJ(ctx context.Context, cnpj string) (cnpjws.RegistryEntry, error) {
	if !ValidCNPJ(cnpj) {
		ve := entity.NewValidationError()
		ve.Add("cnpj", "CNPJ inválido")

		return cnpjws.RegistryEntry{}, ve
	}

	reg, err := s.registry.Lookup(ctx, Digits(cnpj))
	if err != nil {
		return cnpjws.RegistryEntry{}, fmt.Errorf("cnpj lookup: %w", err)
	}

	return reg, nil
}

// Assist forwards a chat prompt to the inference endpoint.
func (s *Service) Assist(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		ve := entity.NewValidationError()
		ve.Add("message", "obrigatório")

		return "", ve
	}

	reply, err := s.assistant.Generate(ctx, message)
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}

	return reply, nil
}
