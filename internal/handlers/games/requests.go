package games

import (
	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/handlers/requestschema"
)

const (
	msgAgentSubmitted = "Game submitted for review"
	msgWebSubmitted   = "Game submitted for review. It will appear once approved."
)

var submitSchema = requestschema.MustCompile(`{
	"type": "object",
	"required": ["title", "html"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"html": {"type": "string", "minLength": 1},
		"description": {"type": ["string", "null"]},
		"creator": {"type": ["string", "null"]}
	}
}`)

// SubmitGameRequest is the body of both submission endpoints
type SubmitGameRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	HTML        string  `json:"html"`
	Creator     *string `json:"creator"`
}

func (r SubmitGameRequest) toSubmission() *domain.Submission {
	return domain.NewSubmission(r.Title, r.Description, r.HTML, r.Creator)
}

// SubmitGameResponse is returned with 201 on admission
type SubmitGameResponse struct {
	GameID  uuid.UUID         `json:"gameId"`
	Slug    string            `json:"slug"`
	Status  domain.GameStatus `json:"status"`
	Message string            `json:"message"`
}
