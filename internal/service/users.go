package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

const passwordMinLen = 6

func validateUser(u entity.User, password string, passwordRequired bool) error {
	ve := entity.NewValidationError()

	if strings.TrimSpace(u.Name) == "" {
		ve.Add("name", "obrigatório")
	}

	if u.CPF == "" {
		ve.Add("cpf", "obrigatório")
	} else if !ValidCPF(u.CPF) {
		ve.Add("cpf", "CPF inválido")
	}

	if strings.TrimSpace(u.Email) == "" {
		ve.Add("email", "obrigatório")
	}

	if u.Phone != "" && !ValidPhone(u.Phone) {
		ve.Add("phone", "telefone inválido")
	}

	if !u.Role.Valid() {
		ve.Add("role", "papel inválido")
	}

	if passwordRequired && password == "" {
		ve.Add("password", "obrigatório")
	}

	if password != "" && len(password) < passwordMinLen {
		ve.Add("password", fmt.Sprintf("mínimo de %d caracteres", passwordMinLen))
	}

	if ve.Empty() {
		return nil
	}

	return ve
}

func (s *Service) CreateUser(ctx context.Context, user entity.User, password string) (entity.User, error) {
	if err := requireRole(ctx, entity.RoleSuperAdmin); err != nil {
		return entity.User{}, err
	}

	if err := validateUser(user, password, true); err != nil {
		return entity.User{}, err
	}

	created, err := s.backend.CreateUser(ctx, user, password)
	if err != nil {
		return entity.User{}, fmt.Errorf("create user: %w", err)
	}

	s.audit(ctx, "user", "create", created.ID)

	return created, nil
}

func (s *Service) Users(ctx context.Context) ([]entity.User, error) {
	return s.backend.Users(ctx)
}

func (s *Service) User(ctx context.Context, id int64) (entity.User, error) {
	return s.backend.User(ctx, id)
}

// UpdateUser accepts an empty password, meaning keep the current one.
func (s *Service) UpdateUser(ctx context.Context, user entity.User, password string) (entity.User, error) {
	if err := requireRole(ctx, entity.RoleSuperAdmin); err != nil {
		return entity.User{}, err
	}

	if err := validateUser(user, password, false); err != nil {
		return entity.User{}, err
	}

	updated, err := s.backend.UpdateUser(ctx, user, password)
	if err != nil {
		return entity.User{}, fmt.Errorf("update user: %w", err)
	}

	s.audit(ctx, "user", "update", updated.ID)

	return updated, nil
}

// DeleteUser removes the user at the backend and drops the user's persisted
// sessions, so a leftover bearer token cannot be restored afterwards.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := requireRole(ctx, entity.RoleSuperAdmin); err != nil {
		return err
	}

	err := s.backend.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	err = s.sessions.DeleteByUserID(ctx, id)
	if err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}

	s.audit(ctx, "user", "delete", id)

	return nil
}
