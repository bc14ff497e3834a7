package entity

import (
	"context"
)

type CtxKey int

const (
	CtxKeyUser CtxKey = iota
	CtxKeyToken
	CtxKeySession
)

func CtxWithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, CtxKeyUser, user)
}

// UserFromCtx returns user from context or ErrUnauthenticated if user is not found.
func UserFromCtx(ctx context.Context) (User, error) {
	user, ok := ctx.Value(CtxKeyUser).(User)
	if !ok {
		return user, ErrUnauthenticated
	}

	return user, nil
}

func CtxWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxKeyToken, token)
}

// TokenFromCtx returns the bearer token from context or empty string if it is not set.
func TokenFromCtx(ctx context.Context) string {
	token, ok := ctx.Value(CtxKeyToken).(string)
	if !ok {
		return ""
	}

	return token
}

func CtxWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, CtxKeySession, s)
}

// SessionFromCtx returns the restored session from context or ErrUnauthenticated
// if it is not set.
func SessionFromCtx(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(CtxKeySession).(Session)
	if !ok {
		return s, ErrUnauthenticated
	}

	return s, nil
}
