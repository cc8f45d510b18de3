package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRatingValue       = 1
	MaxRatingValue       = 5
	MinFingerprintLength = 16
	MaxFingerprintLength = 128
)

// Rating is the current rating of one viewer for one game. At most one exists
// per (GameID, ViewerFingerprint); CreatedAt is the time of the last accepted write.
type Rating struct {
	ID                uuid.UUID `db:"id" json:"id"`
	GameID            uuid.UUID `db:"game_id" json:"gameId"`
	ViewerFingerprint string    `db:"player_fp" json:"-"`
	Value             int       `db:"rating" json:"rating"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

type RatingTable struct {
	ID                string
	GameID            string
	ViewerFingerprint string
	Value             string
	CreatedAt         string
}

func GetRatingTable() RatingTable {
	return RatingTable{
		ID:                "id",
		GameID:            "game_id",
		ViewerFingerprint: "player_fp",
		Value:             "rating",
		CreatedAt:         "created_at",
	}
}

func (RatingTable) TableName() string {
	return "ratings"
}
