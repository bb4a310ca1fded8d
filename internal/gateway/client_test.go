package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/types"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_NoTokenShortCircuits(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken(""))
	_, err := c.List(context.Background())

	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
	if called {
		t.Error("request should not reach the server without a token")
	}
}

func TestClient_List(t *testing.T) {
	profile := types.NewProfile("My Resume", types.NewBlankResume("doc-1"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/profiles" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"profiles": []types.Profile{profile},
			"count":    1,
		})
	}))
	defer server.Close()

	got, err := NewClient(server.URL, staticToken("tok-1")).List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != profile.ID {
		t.Errorf("List = %+v", got)
	}
}

func TestClient_CreateSendsNameAndResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name   string       `json:"name"`
			Resume types.Resume `json:"resume"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if body.Name != "New Profile" || body.Resume.ID != "doc-1" {
			t.Errorf("body = %+v", body)
		}

		created := types.NewProfile(body.Name, body.Resume)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok-1"))
	got, err := c.Create(context.Background(), "New Profile", types.NewBlankResume("doc-1"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Name != "New Profile" {
		t.Errorf("created name = %q", got.Name)
	}
}

func TestClient_UpdateHitsProfilePath(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/profiles/"+id.String() {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(types.Profile{ID: id, Name: "renamed"})
	}))
	defer server.Close()

	name := "renamed"
	got, err := NewClient(server.URL, staticToken("tok-1")).Update(context.Background(), id, ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != "renamed" {
		t.Errorf("updated name = %q", got.Name)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			if !errors.Is(err, ErrNotAuthenticated) {
				t.Errorf("err = %v, want ErrNotAuthenticated", err)
			}
		}},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want TransportError", err)
			}
			if te.Status != http.StatusInternalServerError {
				t.Errorf("status = %d", te.Status)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := NewClient(server.URL, staticToken("tok-1")).Delete(context.Background(), uuid.New())
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestClient_NetworkErrorIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	_, err := NewClient(server.URL, staticToken("tok-1")).List(context.Background())
	if !IsTransport(err) {
		t.Fatalf("err = %v, want transport error", err)
	}
}
