package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/clawgames.net/internal/static/errs"
)

const (
	MsgValidationFailed  = "Validation failed"
	MsgSecurityCheck     = "Game HTML failed security check"
	MsgMissingAPIKey     = "Missing API key"
	MsgInvalidAPIKey     = "Invalid API key"
	MsgTooFast           = "Too fast. Wait a minute between submissions."
	MsgTooManyRatings    = "Too many rating submissions"
	MsgGameNotFound      = "Game not found"
	MsgInternal          = "Internal server error"
	MsgBodyTooLarge      = "Request body too large"
	MsgMissingSubmission = "Missing title or html"
	MsgMissingRating     = "Missing required fields"
)

// ErrorBody is the JSON shape of every error response. Details is only set
// for validation and security rejections.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// FromError maps a service error onto a status code and a body that discloses
// nothing beyond the error category, except for the actionable detail lists of
// validation and security rejections.
func FromError(err error) (int, ErrorBody) {
	var ve *errs.ValidationError
	var sv *errs.SecurityViolation
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorBody{Error: MsgValidationFailed, Details: ve.Messages}
	case errors.As(err, &sv):
		details, _ := errs.Details(sv)
		return http.StatusBadRequest, ErrorBody{Error: MsgSecurityCheck, Details: details}
	case errors.Is(err, errs.MissingCredential):
		return http.StatusUnauthorized, ErrorBody{Error: MsgMissingAPIKey}
	case errors.Is(err, errs.InvalidCredential):
		return http.StatusUnauthorized, ErrorBody{Error: MsgInvalidAPIKey}
	case errors.Is(err, errs.RateLimited):
		return http.StatusTooManyRequests, ErrorBody{Error: MsgTooFast}
	case errors.Is(err, errs.RatingDebounce):
		return http.StatusTooManyRequests, ErrorBody{Error: MsgTooManyRatings}
	case errors.Is(err, errs.NotFound):
		return http.StatusNotFound, ErrorBody{Error: MsgGameNotFound}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: MsgInternal}
	}
}

func WriteError(w http.ResponseWriter, statusCode int, body ErrorBody) {
	WriteSuccess(w, statusCode, body)
}

func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
