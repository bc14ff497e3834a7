package viacep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.Lookup{
		ViaCEPBaseURL: server.URL,
		Timeout:       5 * time.Second,
		RetryAttempts: 0,
	})
}

func TestClient_Lookup(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/01310100/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	})

	addr, err := client.Lookup(context.Background(), "01310100")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if addr.Street != "Avenida Paulista" {
		t.Errorf("street = %q", addr.Street)
	}

	if addr.City != "São Paulo" || addr.State != "SP" {
		t.Errorf("city/state = %q/%q", addr.City, addr.State)
	}
}

func TestClient_Lookup_UnknownCEP(t *testing.T) {
	t.Parallel()

	// ViaCEP answers 200 with an error marker for unknown CEPs.
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	})

	_, err := client.Lookup(context.Background(), "99999999")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Lookup_MalformedCEP(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Lookup(context.Background(), "abc")
	if !errors.Is(err, entity.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestClient_Lookup_ServerError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Lookup(context.Background(), "01310100")
	if !errors.Is(err, entity.ErrLookupUnavailable) {
		t.Errorf("expected ErrLookupUnavailable, got %v", err)
	}
}

func TestClient_Lookup_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep": "01310-100", "localidade": "São Paulo", "uf": "SP"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.Lookup{
		ViaCEPBaseURL: server.URL,
		Timeout:       5 * time.Second,
		RetryAttempts: 2,
	})

	addr, err := client.Lookup(context.Background(), "01310100")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}

	if addr.City != "São Paulo" {
		t.Errorf("city = %q", addr.City)
	}
}
