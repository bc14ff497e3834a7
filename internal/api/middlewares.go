package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v4/request"

	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/pkg/logger"
)

var skipLogging = map[string]struct{}{
	"/api/health": {},
}

type SessionService interface {
	Restore(ctx context.Context, token string) (entity.Session, error)
}

type Middleware struct {
	sessions SessionService
}

func NewMiddleware(sessions SessionService) *Middleware {
	return &Middleware{
		sessions: sessions,
	}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		ctx = logger.WithRequestID(ctx, requestID)
		w.Header().Set("X-Request-Id", requestID)

		if _, ok := skipLogging[r.URL.Path]; !ok {
			reqBody, err := io.ReadAll(r.Body)
			if err != nil {
				SendJSONErr(ctx, w, http.StatusInternalServerError, err, "read request body")
				return
			}

			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewBuffer(reqBody))

			var headers strings.Builder

			for k, v := range r.Header {
				if k == "Authorization" || k == "Cookie" {
					continue
				}

				headers.WriteString(fmt.Sprintf("%s: %s,\n", k, v))
			}

			slog.InfoContext(ctx, "incoming request",
				"request", fmt.Sprintf("%s %s\n%s", r.Method, r.URL.Redacted(), reqBody),
				"headers", headers.String(),
			)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "recovered from panic", "error", err, "stack", string(debug.Stack()))
				SendJSONErr(ctx, w, http.StatusInternalServerError, fmt.Errorf("panic: %v", err), "Erro interno do servidor")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionAuth restores the session for the bearer token from the durable
// store; no backend round-trip happens here.
func (m *Middleware) SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := request.BearerExtractor{}.ExtractToken(r)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Token ausente ou inválido")
			return
		}

		session, err := m.sessions.Restore(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, entity.ErrTokenExpired):
				SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Sessão expirada, faça login novamente")
			case errors.Is(err, entity.ErrUnauthenticated):
				SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Sessão não encontrada")
			default:
				SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Erro de autenticação")
			}

			return
		}

		ctx = entity.CtxWithUser(ctx, session.User)
		ctx = logger.WithUserID(ctx, session.User.ID)
		ctx = entity.CtxWithToken(ctx, token)
		ctx = entity.CtxWithSession(ctx, session)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
