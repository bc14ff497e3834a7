package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gestaoplus/admin-gateway/internal/clients/backend"
	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type ErrorResponse struct {
	Message     string            `json:"message"`
	Description string            `json:"description,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	if originErr != nil {
		slog.ErrorContext(ctx, "api error", "error", originErr.Error())
		SendJSON(ctx, w, code, ErrorResponse{Message: msgToSend, Description: originErr.Error()})

		return
	}

	SendJSON(ctx, w, code, ErrorResponse{Message: msgToSend})
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		code = http.StatusInternalServerError
		http.Error(w, http.StatusText(code), code)

		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", raw, entity.ErrInvalidArgument)
	}

	return id, nil
}

// sendServiceErr maps service errors onto the wire. Validation failures
// carry the field map; backend rejections keep their original status so
// the browser sees what the backend said.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error, fallbackMsg string) {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		SendJSON(ctx, w, http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Dados inválidos",
			Errors:  ve.Fields,
		})

		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallbackMsg
		}

		slog.ErrorContext(ctx, "backend error", "error", err.Error())
		SendJSON(ctx, w, apiErr.Status, ErrorResponse{
			Message: msg,
			Errors:  apiErr.Fields,
		})

		return
	}

	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Parâmetro inválido")
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Registro não encontrado")
	case errors.Is(err, entity.ErrUnauthenticated),
		errors.Is(err, entity.ErrTokenExpired),
		errors.Is(err, entity.ErrInvalidToken):
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Sessão expirada, faça login novamente")
	case errors.Is(err, entity.ErrForbidden):
		SendJSONErr(ctx, w, http.StatusForbidden, err, "Sem permissão para esta ação")
	case errors.Is(err, entity.ErrNestingTooDeep):
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Subatividade não pode ter filhos")
	case errors.Is(err, entity.ErrBackendUnavailable),
		errors.Is(err, entity.ErrLookupUnavailable):
		SendJSONErr(ctx, w, http.StatusBadGateway, err, "Serviço indisponível, tente novamente mais tarde")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, fallbackMsg)
	}
}
