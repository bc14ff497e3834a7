package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type userDTO struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birthDate,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"companyId,omitempty"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func userToDTO(u entity.User, password string) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		CPF:       digitsOnly(u.CPF),
		BirthDate: formatDate(u.BirthDate),
		Email:     u.Email,
		Phone:     digitsOnly(u.Phone),
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		Password:  password,
	}
}

func userFromDTO(d userDTO) entity.User {
	return entity.User{
		ID:        d.ID,
		Name:      d.Name,
		CPF:       d.CPF,
		BirthDate: parseDate(d.BirthDate),
		Email:     d.Email,
		Phone:     d.Phone,
		Role:      entity.UserRole(d.Role),
		CompanyID: d.CompanyID,
		CreatedAt: parseTime(d.CreatedAt),
		UpdatedAt: parseTime(d.UpdatedAt),
	}
}

// CreateUser sends the write-only password alongside the record; it never
// comes back in responses.
func (c *Client) CreateUser(ctx context.Context, user entity.User, password string) (entity.User, error) {
	var out userDTO

	err := c.do(ctx, http.MethodPost, "/api/users", userToDTO(user, password), &out)
	if err != nil {
		return entity.User{}, fmt.Errorf("create user: %w", err)
	}

	return userFromDTO(out), nil
}

func (c *Client) Users(ctx context.Context) ([]entity.User, error) {
	var out []userDTO

	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]entity.User, 0, len(out))
	for _, d := range out {
		users = append(users, userFromDTO(d))
	}

	return users, nil
}

func (c *Client) User(ctx context.Context, id int64) (entity.User, error) {
	var out userDTO

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &out)
	if err != nil {
		return entity.User{}, fmt.Errorf("get user %d: %w", id, err)
	}

	return userFromDTO(out), nil
}

func (c *Client) UpdateUser(ctx context.Context, user entity.User, password string) (entity.User, error) {
	var out userDTO

	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), userToDTO(user, password), &out)
	if err != nil {
		return entity.User{}, fmt.Errorf("update user %d: %w", user.ID, err)
	}

	return userFromDTO(out), nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	return nil
}
