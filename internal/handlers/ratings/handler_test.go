package ratings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/handlers/response"
	"gitlab.com/clawgames.net/internal/static/errs"
)

type fakeRatingService struct {
	err    error
	gameID uuid.UUID
	fp     string
	value  int
	calls  int
}

func (f *fakeRatingService) SubmitRating(_ context.Context, gameID uuid.UUID, fp string, value int) (*domain.Rating, error) {
	f.calls++
	f.gameID, f.fp, f.value = gameID, fp, value
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Rating{ID: uuid.New(), GameID: gameID, ViewerFingerprint: fp, Value: value}, nil
}

func submit(svc *fakeRatingService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	NewRatingHandler(svc, logging.NewNopLogger()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(body)))
	return rec
}

func TestSubmitRating(t *testing.T) {
	gameID := uuid.New()
	svc := &fakeRatingService{}
	rec := submit(svc, `{"gameId":"`+gameID.String()+`","playerFp":"0123456789abcdef","rating":4}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp SubmitRatingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Rating != 4 || resp.ID == uuid.Nil {
		t.Fatalf("response = %+v", resp)
	}
	if svc.gameID != gameID || svc.fp != "0123456789abcdef" || svc.value != 4 {
		t.Fatalf("service saw %v %q %d", svc.gameID, svc.fp, svc.value)
	}
}

func TestSubmitRatingRejections(t *testing.T) {
	const fp = "0123456789abcdef"
	id := uuid.NewString()
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{"missing rating", `{"gameId":"` + id + `","playerFp":"` + fp + `"}`, nil, http.StatusBadRequest, response.MsgMissingRating, 0},
		{"fractional rating", `{"gameId":"` + id + `","playerFp":"` + fp + `","rating":2.5}`, nil, http.StatusBadRequest, response.MsgValidationFailed, 0},
		{"out of range", `{"gameId":"` + id + `","playerFp":"` + fp + `","rating":9}`, errs.NewValidationError("Rating must be 1-5"), http.StatusBadRequest, response.MsgValidationFailed, 1},
		{"debounced", `{"gameId":"` + id + `","playerFp":"` + fp + `","rating":3}`, errs.RatingDebounce, http.StatusTooManyRequests, response.MsgTooManyRatings, 1},
		{"not live", `{"gameId":"` + id + `","playerFp":"` + fp + `","rating":3}`, errs.NotFound, http.StatusNotFound, response.MsgGameNotFound, 1},
		{"store down", `{"gameId":"` + id + `","playerFp":"` + fp + `","rating":3}`, errs.Persistence, http.StatusInternalServerError, response.MsgInternal, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRatingService{err: tt.err}
			rec := submit(svc, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			var body response.ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tt.wantError || svc.calls != tt.wantCalls {
				t.Fatalf("error = %q calls = %d", body.Error, svc.calls)
			}
		})
	}
}

func TestUnparsableGameIDReachesGateAsNil(t *testing.T) {
	svc := &fakeRatingService{err: errs.NotFound}
	rec := submit(svc, `{"gameId":"not-a-uuid","playerFp":"0123456789abcdef","rating":3}`)

	if rec.Code != http.StatusNotFound || svc.gameID != uuid.Nil {
		t.Fatalf("status = %d gameID = %v", rec.Code, svc.gameID)
	}
}
