package handlers

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/handlers/response"
)

const unknownSource = "unknown"

func ResponseWithJson(w http.ResponseWriter, statusCode int, data interface{}) {
	response.WriteSuccess(w, statusCode, data)
}

func ResponseError(w http.ResponseWriter, message string, code int, details ...string) {
	response.WriteError(w, code, response.ErrorBody{Error: message, Details: details})
}

// ResponseServiceError writes the boundary response for err. Internal failures
// are logged with their cause and returned opaque.
func ResponseServiceError(w http.ResponseWriter, logger primary.Logger, err error) {
	status, body := response.FromError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	response.WriteError(w, status, body)
}

// ReadBody reads the whole request body. A body over the limit installed by
// MiddlewareProvider.LimitBody is answered with 413 and ok=false.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ResponseError(w, response.MsgBodyTooLarge, http.StatusRequestEntityTooLarge)
			return nil, false
		}
		ResponseError(w, "Invalid request", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

// SourceKey identifies the submitting client for throttling: the first
// X-Forwarded-For entry, else the peer host, else "unknown".
func SourceKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return unknownSource
}

// CredentialFromRequest extracts agent credentials: X-API-Key first, then a
// bearer token. No credential yields an empty API-key credential.
func CredentialFromRequest(r *http.Request) domain.Credential {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return domain.Credential{Provider: domain.ProviderAPIKey, Secret: key}
	}
	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && strings.TrimSpace(token) != "" {
		return domain.Credential{Provider: domain.ProviderJWT, Secret: strings.TrimSpace(token)}
	}
	return domain.Credential{Provider: domain.ProviderAPIKey}
}
