package domain

import (
	"time"

	"github.com/google/uuid"
)

const FrameworkHuman = "human"

// Bot owns submitted games. Automated agents authenticate as a bot; anonymous
// humans are attributed to a community bot that has no usable credential.
type Bot struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	APIKeyHash *string   `db:"api_key_hash"`
	Bio        *string   `db:"bio"`
	Framework  string    `db:"framework"`
	CreatedAt  time.Time `db:"created_at"`
}

type BotsTable struct {
	ID         string
	Name       string
	APIKeyHash string
	Bio        string
	Framework  string
	CreatedAt  string
}

func GetBotTable() BotsTable {
	return BotsTable{
		ID:         "id",
		Name:       "name",
		APIKeyHash: "api_key_hash",
		Bio:        "bio",
		Framework:  "framework",
		CreatedAt:  "created_at",
	}
}

func (t BotsTable) GetTableName() string {
	return "bots"
}
