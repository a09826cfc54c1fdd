package relay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvarma/portfolio-api/internal/models"
	"go.uber.org/zap"
)

func testSubmission() *models.ContactSubmission {
	return &models.ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Query:   models.QueryTypeProject,
		Message: "I would like to discuss a project with you.",
	}
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	var capturedAccept string
	var capturedFields map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAccept = r.Header.Get("Accept")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		capturedFields = make(map[string]string)
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				capturedFields[name] = values[0]
			}
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	if err := client.Send(context.Background(), testSubmission()); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if capturedAccept != "application/json" {
		t.Errorf("Accept header = %q, want application/json", capturedAccept)
	}

	want := map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"query":    "project",
		"message":  "I would like to discuss a project with you.",
		"_subject": "Contact: project",
		"_replyto": "jane@example.com",
	}
	for field, wantValue := range want {
		if capturedFields[field] != wantValue {
			t.Errorf("form field %s = %q, want %q", field, capturedFields[field], wantValue)
		}
	}
}

func TestClient_SendNon2xx(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(server.URL, zap.NewNop())
		err := client.Send(context.Background(), testSubmission())
		server.Close()

		if !errors.Is(err, ErrUpstream) {
			t.Errorf("status %d: error = %v, want ErrUpstream", status, err)
		}
	}
}

func TestClient_SendUnconfigured(t *testing.T) {
	t.Parallel()

	client := NewClient("", zap.NewNop())

	if client.Configured() {
		t.Error("Configured() should be false for empty endpoint")
	}
	if err := client.Send(context.Background(), testSubmission()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestClient_SendUnreachable(t *testing.T) {
	t.Parallel()

	// A closed server gives a connection error rather than a status code.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, zap.NewNop())
	err := client.Send(context.Background(), testSubmission())
	if err == nil {
		t.Fatal("expected error for unreachable relay")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Error("connection failure should not be reported as a configuration error")
	}
}
