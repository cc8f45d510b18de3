package ratings

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/services/rating"
	"gitlab.com/clawgames.net/internal/handlers"
	"gitlab.com/clawgames.net/internal/handlers/requestschema"
	"gitlab.com/clawgames.net/internal/handlers/response"
	"gitlab.com/clawgames.net/internal/static/errs"
)

var ratingSchema = requestschema.MustCompile(`{
	"type": "object",
	"required": ["gameId", "playerFp", "rating"],
	"properties": {
		"gameId": {"type": "string", "minLength": 1},
		"playerFp": {"type": "string", "minLength": 1},
		"rating": {"type": "number"}
	}
}`)

// SubmitRatingRequest is the body of a rating submission
type SubmitRatingRequest struct {
	GameID   string  `json:"gameId"`
	PlayerFp string  `json:"playerFp"`
	Rating   float64 `json:"rating"`
}

// SubmitRatingResponse echoes the stored rating
type SubmitRatingResponse struct {
	ID     uuid.UUID `json:"id"`
	Rating int       `json:"rating"`
}

// RatingHandler handles viewer rating requests
type RatingHandler struct {
	ratingService rating.IRatingService
	logger        primary.Logger
}

var _ rating.IRatingService = &rating.RatingGate{}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService rating.IRatingService, logger primary.Logger) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		logger:        logger,
	}
}

// RegisterRoutes registers the API routes for RatingHandler
func (h *RatingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ratings", h.SubmitRating).Methods(http.MethodPost)
}

// SubmitRating handles rating submissions
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	body, ok := handlers.ReadBody(w, r)
	if !ok {
		return
	}

	problems, err := ratingSchema.Validate(body)
	if err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if len(problems) > 0 {
		handlers.ResponseError(w, response.MsgMissingRating, http.StatusBadRequest, problems...)
		return
	}

	var req SubmitRatingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Rating != math.Trunc(req.Rating) {
		handlers.ResponseServiceError(w, h.logger, errs.NewValidationError(rating.MsgInvalidRating))
		return
	}

	// An unparsable id can never name a live game; the gate reports it as
	// not found after the value checks.
	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		gameID = uuid.Nil
	}

	stored, err := h.ratingService.SubmitRating(r.Context(), gameID, req.PlayerFp, int(req.Rating))
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, SubmitRatingResponse{
		ID:     stored.ID,
		Rating: stored.Value,
	})
}
