package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/domain"
)

type stubSubmission struct{}

func (stubSubmission) SubmitAsAgent(context.Context, domain.Credential, *domain.Submission) (*domain.SubmissionReceipt, error) {
	return &domain.SubmissionReceipt{GameID: uuid.New(), Slug: "a-1", Status: domain.GameStatusPending}, nil
}

func (stubSubmission) AuthenticateAgent(context.Context, domain.Credential) (*domain.Bot, error) {
	return &domain.Bot{ID: uuid.New()}, nil
}

func (stubSubmission) SubmitAsBot(context.Context, *domain.Bot, *domain.Submission) (*domain.SubmissionReceipt, error) {
	return &domain.SubmissionReceipt{GameID: uuid.New(), Slug: "a-1", Status: domain.GameStatusPending}, nil
}

func (stubSubmission) SubmitAnonymous(context.Context, string, *domain.Submission) (*domain.SubmissionReceipt, error) {
	panic("unexpected")
}

type stubRating struct{}

func (stubRating) SubmitRating(context.Context, uuid.UUID, string, int) (*domain.Rating, error) {
	return &domain.Rating{ID: uuid.New(), Value: 3}, nil
}

func newTestServer(t *testing.T, maxBody int64) http.Handler {
	t.Helper()
	s := NewServer(&config.HTTPConfig{Port: 0, ServiceName: "test", MaxBodyBytes: maxBody},
		*NewServiceProvider(stubSubmission{}, stubRating{}), logging.NewNopLogger())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	return s.Handler()
}

func TestRoutes(t *testing.T) {
	h := newTestServer(t, 1<<20)

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodPost, "/api/games/submit", `{"title":"a","html":"b"}`, http.StatusCreated},
		{http.MethodPost, "/api/ratings", `{"gameId":"x","playerFp":"0123456789abcdef","rating":3}`, http.StatusOK},
		{http.MethodGet, "/api/games/submit", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/games/web-submit", `{"title":"a","html":"b"}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	h := newTestServer(t, 16)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/games/submit",
		strings.NewReader(`{"title":"a","html":"`+strings.Repeat("x", 64)+`"}`)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestInitRequiresServices(t *testing.T) {
	s := NewServer(&config.HTTPConfig{}, ServiceProvider{}, logging.NewNopLogger())
	if err := s.Init(); err == nil {
		t.Fatal("Init accepted missing services")
	}
}
