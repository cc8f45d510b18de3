package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantDetails int
	}{
		{"validation", errs.NewValidationError("title required"), http.StatusBadRequest, MsgValidationFailed, 1},
		{"security", &errs.SecurityViolation{Violations: []domain.Violation{{RuleID: "net.fetch", Message: "a"}, {RuleID: "eval.eval", Message: "b"}}}, http.StatusBadRequest, MsgSecurityCheck, 2},
		{"missing key", errs.MissingCredential, http.StatusUnauthorized, MsgMissingAPIKey, 0},
		{"invalid key", errs.InvalidCredential, http.StatusUnauthorized, MsgInvalidAPIKey, 0},
		{"throttled", errs.RateLimited, http.StatusTooManyRequests, MsgTooFast, 0},
		{"debounced", errs.RatingDebounce, http.StatusTooManyRequests, MsgTooManyRatings, 0},
		{"not found", fmt.Errorf("game x: %w", errs.NotFound), http.StatusNotFound, MsgGameNotFound, 0},
		{"duplicate is opaque", fmt.Errorf("create: %w: %w", errs.Persistence, errs.Duplicate), http.StatusInternalServerError, MsgInternal, 0},
		{"unknown is opaque", errors.New("pq: password authentication failed"), http.StatusInternalServerError, MsgInternal, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := FromError(tt.err)
			if status != tt.wantStatus || body.Error != tt.wantError || len(body.Details) != tt.wantDetails {
				t.Fatalf("FromError = %d %+v", status, body)
			}
		})
	}
}
