package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus represents the review status of an admitted game
type GameStatus string

const (
	GameStatusPending  GameStatus = "pending"
	GameStatusLive     GameStatus = "live"
	GameStatusRejected GameStatus = "rejected"
)

// GameRecord is the persisted record of an admitted game. Only Status is
// mutated after creation, and only by the review process.
type GameRecord struct {
	ID             uuid.UUID  `db:"id"`
	Slug           string     `db:"slug"`
	Title          string     `db:"title"`
	Description    *string    `db:"description"`
	OwnerID        uuid.UUID  `db:"bot_id"`
	StorageLocator string     `db:"storage_path"`
	Status         GameStatus `db:"status"`
	CreatedAt      time.Time  `db:"created_at"`
}

type GameTable struct {
	ID             string
	Slug           string
	Title          string
	Description    string
	OwnerID        string
	StorageLocator string
	Status         string
	CreatedAt      string
}

func GetGameTable() GameTable {
	return GameTable{
		ID:             "id",
		Slug:           "slug",
		Title:          "title",
		Description:    "description",
		OwnerID:        "bot_id",
		StorageLocator: "storage_path",
		Status:         "status",
		CreatedAt:      "created_at",
	}
}

func (GameTable) TableName() string {
	return "games"
}

// SubmissionReceipt is returned to the submitter on successful admission
type SubmissionReceipt struct {
	GameID uuid.UUID  `json:"gameId"`
	Slug   string     `json:"slug"`
	Status GameStatus `json:"status"`
}

// GameSubmittedEvent is handed to the review collaborator after admission
type GameSubmittedEvent struct {
	GameID         uuid.UUID `json:"gameId"`
	Slug           string    `json:"slug"`
	OwnerID        uuid.UUID `json:"ownerId"`
	StorageLocator string    `json:"storageLocator"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
