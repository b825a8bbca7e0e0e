package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/japi"
	"github.com/artpar/japi/adapters/auth"
	"github.com/artpar/japi/adapters/clock"
	"github.com/artpar/japi/adapters/hasher"
	"github.com/artpar/japi/adapters/idgen"
	"github.com/artpar/japi/adapters/memory"
	"github.com/artpar/japi/domain/note"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "s3cret"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := hasher.NewBcrypt(4)
	adminHash, err := h.Hash(testPassword)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	store := memory.NewNoteStore()
	store.Create(context.Background(), note.Note{
		ID:        "n1",
		Title:     "first",
		Body:      "hello",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	handler := NewHandler(Deps{
		Notes:      store,
		Tokens:     auth.NewTokenService("test-secret", time.Hour),
		Hasher:     h,
		IDs:        idgen.NewSequential("note-"),
		Clock:      clock.Fixed{T: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		AdminEmail: testEmail,
		AdminHash:  adminHash,
		Logger:     zerolog.Nop(),
		Options:    japi.Options{IDs: idgen.NewSequential("gen-")},
	})

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, doc
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	status, doc := do(t, http.MethodPost, srv.URL+"/login", "",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}

	entry := doc["data"].([]any)[0].(map[string]any)
	token, _ := entry["token"].(string)
	if token == "" {
		t.Fatal("login response has no token attribute")
	}
	return token
}

func TestHome(t *testing.T) {
	srv := newTestServer(t)

	status, doc := do(t, http.MethodGet, srv.URL+"/", "", "")

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	entry := doc["data"].([]any)[0].(map[string]any)
	if entry["attributes"].(map[string]any)["body"] != "japid is up" {
		t.Errorf("attributes = %v", entry["attributes"])
	}
}

func TestTeapot(t *testing.T) {
	srv := newTestServer(t)

	status, doc := do(t, http.MethodGet, srv.URL+"/teapot", "", "")

	if status != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", status)
	}
	eo := doc["errors"].([]any)[0].(map[string]any)
	if eo["status"] != "418" {
		t.Errorf("errors[0].status = %v", eo["status"])
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	status, doc := do(t, http.MethodGet, srv.URL+"/nope", "", "")

	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if _, ok := doc["errors"]; !ok {
		t.Error("unmatched routes should produce an error envelope")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	status, doc := do(t, http.MethodPost, srv.URL+"/login", "",
		`{"email":"`+testEmail+`","password":"wrong"}`)

	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	eo := doc["errors"].([]any)[0].(map[string]any)
	if eo["title"] != "Unauthorized" {
		t.Errorf("title = %v", eo["title"])
	}
}

func TestNotesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		status, doc := do(t, http.MethodGet, srv.URL+"/notes", "", "")
		if status != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", status)
		}
		if _, ok := doc["errors"]; !ok {
			t.Error("want error envelope")
		}
	})

	t.Run("garbage token carries jwt meta", func(t *testing.T) {
		status, doc := do(t, http.MethodGet, srv.URL+"/notes", "not-a-token", "")
		if status != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", status)
		}
		eo := doc["errors"].([]any)[0].(map[string]any)
		if _, ok := eo["meta"].(map[string]any)["JWT error"]; !ok {
			t.Errorf("errors[0] = %v, want meta with JWT error detail", eo)
		}
	})
}

func TestListNotes(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	status, doc := do(t, http.MethodGet, srv.URL+"/notes", token, "")

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := doc["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(data))
	}
	entry := data[0].(map[string]any)
	if entry["id"] != "n1" || entry["type"] != "note" {
		t.Errorf("entry = %v, want id n1 type note", entry)
	}
	if doc["meta"].(map[string]any)["count"] != float64(1) {
		t.Errorf("meta = %v, want count 1", doc["meta"])
	}
}

func TestGetNote(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	t.Run("found", func(t *testing.T) {
		status, doc := do(t, http.MethodGet, srv.URL+"/notes/n1", token, "")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		entry := doc["data"].([]any)[0].(map[string]any)
		if entry["attributes"].(map[string]any)["title"] != "first" {
			t.Errorf("attributes = %v", entry["attributes"])
		}
	})

	t.Run("missing", func(t *testing.T) {
		status, _ := do(t, http.MethodGet, srv.URL+"/notes/missing", token, "")
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})
}

func TestCreateNote(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	t.Run("created", func(t *testing.T) {
		status, doc := do(t, http.MethodPost, srv.URL+"/notes", token,
			`{"title":"second","body":"world"}`)

		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}
		entry := doc["data"].([]any)[0].(map[string]any)
		if entry["id"] != "note-1" {
			t.Errorf("id = %v, want note-1", entry["id"])
		}
		if doc["links"].(map[string]any)["self"] != "/notes/note-1" {
			t.Errorf("links = %v", doc["links"])
		}
	})

	t.Run("missing title", func(t *testing.T) {
		status, doc := do(t, http.MethodPost, srv.URL+"/notes", token, `{"body":"x"}`)

		if status != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", status)
		}
		eo := doc["errors"].([]any)[0].(map[string]any)
		if eo["title"] != "title is required" {
			t.Errorf("title = %v", eo["title"])
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, srv.URL+"/notes", token, `{{{`)
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})
}

func TestPublicNote(t *testing.T) {
	srv := newTestServer(t)

	t.Run("redacted by default", func(t *testing.T) {
		status, doc := do(t, http.MethodGet, srv.URL+"/notes/n1/public", "", "")

		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		entry := doc["data"].([]any)[0].(map[string]any)
		attrs := entry["attributes"].(map[string]any)
		if v, ok := attrs["title"]; !ok || v != nil {
			t.Errorf("attributes.title = %v, want present and null", v)
		}
		// The key is present with a null value, so sanitation leaves it alone.
		if v, ok := entry["id"]; !ok || v != nil {
			t.Errorf("id = %v, want present and null", v)
		}
	})

	t.Run("reveal id", func(t *testing.T) {
		_, doc := do(t, http.MethodGet, srv.URL+"/notes/n1/public?reveal_id=true", "", "")

		entry := doc["data"].([]any)[0].(map[string]any)
		if entry["id"] != "n1" {
			t.Errorf("id = %v, want n1", entry["id"])
		}
	})
}
