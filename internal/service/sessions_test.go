package service

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func testToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	return signed
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := testToken(t, expiresAt)

	backend := &fakeBackend{
		loginFn: func(_ context.Context, email, password string) (string, entity.User, error) {
			require.Equal(t, "admin@empresa.com.br", email)
			require.Equal(t, "segredo", password)

			return token, entity.User{ID: 42, Email: email, Role: entity.RoleAdmin}, nil
		},
	}

	store := newFakeSessionStore()

	s := New(backend, store, nil, nil, nil, nil, nil)

	session, err := s.Login(context.Background(), "admin@empresa.com.br", "segredo")
	require.NoError(t, err)

	require.Equal(t, token, session.Token)
	require.Equal(t, int64(42), session.User.ID)
	require.True(t, session.ExpiresAt.Equal(expiresAt), "expiry comes from the token's exp claim")

	saved, err := store.SessionByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, session.ID, saved.ID)
}

func TestService_Login_MissingCredentials(t *testing.T) {
	t.Parallel()

	s := New(&fakeBackend{}, newFakeSessionStore(), nil, nil, nil, nil, nil)

	_, err := s.Login(context.Background(), "", "")

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "email")
	require.Contains(t, ve.Fields, "password")
}

func TestService_Login_TokenWithoutExpiry(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "42"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	backend := &fakeBackend{
		loginFn: func(_ context.Context, _, _ string) (string, entity.User, error) {
			return signed, entity.User{ID: 42}, nil
		},
	}

	s := New(backend, newFakeSessionStore(), nil, nil, nil, nil, nil)

	_, err = s.Login(context.Background(), "admin@empresa.com.br", "segredo")
	require.ErrorIs(t, err, entity.ErrInvalidToken)
}

// Restore must answer from the durable store alone; the embedded-nil backend
// fake panics on any call, so a round-trip would fail the test loudly.
func TestService_Restore_NoBackendRoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()

	session := entity.Session{
		Token:     "tok-1",
		User:      entity.User{ID: 7, Role: entity.RoleRegular},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.SaveSession(context.Background(), session))

	s := New(&fakeBackend{}, store, nil, nil, nil, nil, nil)

	restored, err := s.Restore(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, int64(7), restored.User.ID)
}

func TestService_Restore_UnknownToken(t *testing.T) {
	t.Parallel()

	s := New(&fakeBackend{}, newFakeSessionStore(), nil, nil, nil, nil, nil)

	_, err := s.Restore(context.Background(), "nope")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Restore_ExpiredSessionIsInvalidated(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()

	require.NoError(t, store.SaveSession(context.Background(), entity.Session{
		Token:     "tok-old",
		User:      entity.User{ID: 7},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	s := New(&fakeBackend{}, store, nil, nil, nil, nil, nil)

	_, err := s.Restore(context.Background(), "tok-old")
	require.ErrorIs(t, err, entity.ErrTokenExpired)

	// The stale record is gone; a second attempt reads as unauthenticated.
	_, err = s.Restore(context.Background(), "tok-old")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()

	require.NoError(t, store.SaveSession(context.Background(), entity.Session{
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	s := New(&fakeBackend{}, store, nil, nil, nil, nil, nil)

	require.NoError(t, s.Logout(context.Background(), "tok-1"))

	_, err := s.Restore(context.Background(), "tok-1")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_PurgeExpiredSessions(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()

	require.NoError(t, store.SaveSession(context.Background(), entity.Session{
		Token:     "tok-live",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.SaveSession(context.Background(), entity.Session{
		Token:     "tok-dead",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	s := New(&fakeBackend{}, store, nil, nil, nil, nil, nil)

	require.NoError(t, s.PurgeExpiredSessions(context.Background()))

	_, err := store.SessionByToken(context.Background(), "tok-live")
	require.NoError(t, err)

	_, err = store.SessionByToken(context.Background(), "tok-dead")
	require.ErrorIs(t, err, entity.ErrNotFound)
}
