package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

// Login authenticates against the backend, extracts the expiry embedded in
// the returned token and persists the session durably. The session is the
// unit the browser restores on reload.
func (s *Service) Login(ctx context.Context, email, password string) (entity.Session, error) {
	ve := entity.NewValidationError()

	if email == "" {
		ve.Add("email", "obrigatório")
	}

	if password == "" {
		ve.Add("password", "obrigatório")
	}

	if !ve.Empty() {
		return entity.Session{}, ve
	}

	token, user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return entity.Session{}, fmt.Errorf("backend login: %w", err)
	}

	expiresAt, err := s.tokenExpiry(token)
	if err != nil {
		return entity.Session{}, fmt.Errorf("token expiry: %w", err)
	}

	session := entity.Session{
		ID:        uuid.Must(uuid.NewV4()),
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	err = s.sessions.SaveSession(ctx, session)
	if err != nil {
		return entity.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// Restore loads the session for a bearer token from the store, without a
// backend round-trip. An expired session is invalidated and forces a new
// login; there is no refresh flow.
func (s *Service) Restore(ctx context.Context, token string) (entity.Session, error) {
	session, err := s.sessions.SessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.Session{}, entity.ErrUnauthenticated
		}

		return entity.Session{}, fmt.Errorf("load session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.DeleteSession(ctx, token); err != nil {
			return entity.Session{}, fmt.Errorf("invalidate session: %w", err)
		}

		return entity.Session{}, entity.ErrTokenExpired
	}

	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.sessions.DeleteSession(ctx, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// PurgeExpiredSessions is run periodically by the job service.
func (s *Service) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.CleanExpired(ctx)
}

// tokenExpiry reads the exp claim of the backend token. With a configured
// issuer public key the signature is verified as well; without one the
// gateway trusts the claims, since the backend re-checks the token on every
// round-trip anyway.
func (s *Service) tokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims

	if s.tokenKey != nil {
		parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
			_, ok := t.Method.(*jwt.SigningMethodRSA)
			if !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}

			return s.tokenKey, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return time.Time{}, entity.ErrTokenExpired
			}

			return time.Time{}, fmt.Errorf("parse token: %w: %s", entity.ErrInvalidToken, err)
		}

		if !parsed.Valid {
			return time.Time{}, entity.ErrInvalidToken
		}
	} else {
		_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse token: %w: %s", entity.ErrInvalidToken, err)
		}
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry: %w", entity.ErrInvalidToken)
	}

	return claims.ExpiresAt.Time, nil
}
