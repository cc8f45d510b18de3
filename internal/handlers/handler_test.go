package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/domain"
)

func TestSourceKey(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		remote string
		want   string
	}{
		{"forwarded first entry", " 203.0.113.7 , 10.0.0.1", "10.0.0.2:5555", "203.0.113.7"},
		{"remote host", "", "198.51.100.1:443", "198.51.100.1"},
		{"unknown", "", "", "unknown"},
		{"blank forwarded falls back", " ,10.0.0.1", "198.51.100.1:443", "198.51.100.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := SourceKey(r); got != tt.want {
				t.Fatalf("SourceKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCredentialFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if c := CredentialFromRequest(r); c.Secret != "" || c.Provider != domain.ProviderAPIKey {
		t.Fatalf("empty request credential = %+v", c)
	}

	r.Header.Set("Authorization", "Bearer tok")
	if c := CredentialFromRequest(r); c.Provider != domain.ProviderJWT || c.Secret != "tok" {
		t.Fatalf("bearer credential = %+v", c)
	}

	r.Header.Set("X-API-Key", "id.secret")
	if c := CredentialFromRequest(r); c.Provider != domain.ProviderAPIKey || c.Secret != "id.secret" {
		t.Fatalf("api key credential = %+v", c)
	}
}

func TestLimitBody(t *testing.T) {
	mw := New(8, logging.NewNopLogger())
	h := mw.LimitBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ReadBody(w, r); ok {
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("small body status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body status = %d", rec.Code)
	}
}

func TestRecover(t *testing.T) {
	mw := New(0, logging.NewNopLogger())
	h := mw.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}
