package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, entity.User, error) {
	var out loginResponse

	err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return "", entity.User{}, fmt.Errorf("login: %w", err)
	}

	return out.Token, userFromDTO(out.User), nil
}
