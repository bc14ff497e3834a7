package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, 5*time.Second)
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		if req["email"] != "admin@empresa.com.br" {
			t.Errorf("unexpected email %q", req["email"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "tok-123",
			"user": {"id": 42, "name": "Ana Souza", "email": "admin@empresa.com.br", "role": "admin"}
		}`))
	})

	token, user, err := client.Login(context.Background(), "admin@empresa.com.br", "segredo")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if token != "tok-123" {
		t.Errorf("token = %q, want %q", token, "tok-123")
	}

	if user.ID != 42 || user.Role != entity.RoleAdmin {
		t.Errorf("user = %+v", user)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "credenciais inválidas"}`))
	})

	_, _, err := client.Login(context.Background(), "admin@empresa.com.br", "errada")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusUnauthorized)
	}

	if apiErr.Message != "credenciais inválidas" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClient_BearerTokenForwarded(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	ctx := entity.CtxWithToken(context.Background(), "tok-123")

	_, err := client.Companies(ctx)
	if err != nil {
		t.Fatalf("Companies() error = %v", err)
	}
}

func TestClient_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Company(context.Background(), 99)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ValidationErrorsMapped(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"message": "dados inválidos",
			"errors": {"cnpj": "CNPJ já cadastrado"}
		}`))
	})

	_, err := client.CreateCompany(context.Background(), entity.Company{
		LegalName: "Construtora Horizonte LTDA",
		CNPJ:      "11.222.333/0001-81",
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.Fields["cnpj"] != "CNPJ já cadastrado" {
		t.Errorf("fields = %v", apiErr.Fields)
	}
}

func TestClient_NonJSONErrorBodyKeptRaw(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := client.Projects(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.Message != "" {
		t.Errorf("message should be empty for non-JSON body, got %q", apiErr.Message)
	}

	if apiErr.Body != "<html>gateway timeout</html>" {
		t.Errorf("body = %q", apiErr.Body)
	}
}

func TestClient_NetworkErrorIsBackendUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // nothing listens anymore

	client := NewClient(server.URL, time.Second)

	_, err := client.Projects(context.Background())
	if !errors.Is(err, entity.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestClient_CompleteProject(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/7/complete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 7,
			"title": "Reforma da sede",
			"startDate": "2026-03-01",
			"status": "in_progress",
			"priority": "high",
			"companyId": 1,
			"responsibleId": 2,
			"atividades": [
				{
					"id": 1,
					"title": "fundação",
					"status": "in_progress",
					"priority": "high",
					"projectId": 7,
					"subatividades": [
						{"id": 2, "title": "escavação", "status": "completed", "priority": "high", "projectId": 7}
					]
				},
				{"id": 3, "title": "alvenaria", "status": "pending", "priority": "medium", "projectId": 7}
			]
		}`))
	})

	project, activities, err := client.CompleteProject(context.Background(), 7)
	if err != nil {
		t.Fatalf("CompleteProject() error = %v", err)
	}

	if project.ID != 7 || project.Title != "Reforma da sede" {
		t.Errorf("project = %+v", project)
	}

	if len(activities) != 3 {
		t.Fatalf("len(activities) = %d, want 3", len(activities))
	}

	// A nested child missing parentActivityId gets it filled from the
	// enclosing node.
	var sub entity.Activity

	for _, a := range activities {
		if a.ID == 2 {
			sub = a
		}
	}

	if sub.ParentID == nil || *sub.ParentID != 1 {
		t.Errorf("sub.ParentID = %v, want 1", sub.ParentID)
	}
}

func TestClient_CreateActivity_SendsParentID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}

		if body["parentActivityId"] != float64(1) {
			t.Errorf("parentActivityId = %v, want 1", body["parentActivityId"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 9, "title": "escavação", "status": "pending", "priority": "high", "projectId": 7, "parentActivityId": 1}`))
	})

	parentID := int64(1)

	created, err := client.CreateActivity(context.Background(), entity.Activity{
		Title:     "escavação",
		Status:    entity.ActivityStatusPending,
		Priority:  entity.PriorityHigh,
		ProjectID: 7,
		ParentID:  &parentID,
	})
	if err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}

	if created.ID != 9 {
		t.Errorf("created.ID = %d, want 9", created.ID)
	}
}
