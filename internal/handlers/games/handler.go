package games

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/services/submission"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/handlers"
	"gitlab.com/clawgames.net/internal/handlers/response"
)

// GameHandler handles game submission requests
type GameHandler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

var _ submission.ISubmissionService = &submission.SubmissionOrchestrator{}

// NewGameHandler creates a new game handler
func NewGameHandler(submissionService submission.ISubmissionService, logger primary.Logger) *GameHandler {
	return &GameHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the API routes for GameHandler
func (h *GameHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/games/submit", h.SubmitAsAgent).Methods(http.MethodPost)
	router.HandleFunc("/api/games/web-submit", h.SubmitAnonymous).Methods(http.MethodPost)
}

// SubmitAsAgent handles authenticated agent submissions. Credentials are
// checked before the body is read.
func (h *GameHandler) SubmitAsAgent(w http.ResponseWriter, r *http.Request) {
	bot, err := h.submissionService.AuthenticateAgent(r.Context(), handlers.CredentialFromRequest(r))
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	receipt, err := h.submissionService.SubmitAsBot(r.Context(), bot, req.toSubmission())
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}
	h.respond(w, receipt, msgAgentSubmitted)
}

// SubmitAnonymous handles unauthenticated web submissions, throttled per source
func (h *GameHandler) SubmitAnonymous(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	receipt, err := h.submissionService.SubmitAnonymous(r.Context(), handlers.SourceKey(r), req.toSubmission())
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}
	h.respond(w, receipt, msgWebSubmitted)
}

func (h *GameHandler) decode(w http.ResponseWriter, r *http.Request) (*SubmitGameRequest, bool) {
	body, ok := handlers.ReadBody(w, r)
	if !ok {
		return nil, false
	}

	problems, err := submitSchema.Validate(body)
	if err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return nil, false
	}
	if len(problems) > 0 {
		handlers.ResponseError(w, response.MsgMissingSubmission, http.StatusBadRequest, problems...)
		return nil, false
	}

	var req SubmitGameRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (h *GameHandler) respond(w http.ResponseWriter, receipt *domain.SubmissionReceipt, message string) {
	handlers.ResponseWithJson(w, http.StatusCreated, SubmitGameResponse{
		GameID:  receipt.GameID,
		Slug:    receipt.Slug,
		Status:  receipt.Status,
		Message: message,
	})
}
