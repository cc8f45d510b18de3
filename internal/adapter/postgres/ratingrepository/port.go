// Package ratingrepository stores viewer ratings in PostgreSQL.
package ratingrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
	querybuilder "gitlab.com/clawgames.net/internal/utils"
)

var _ secondary.RatingRepository = &RatingRepository{}

// RatingRepository implements secondary.RatingRepository with PostgreSQL
type RatingRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewRatingRepository creates a new PostgreSQL rating repository
func NewRatingRepository(db *sqlx.DB, logger primary.Logger, schema string) *RatingRepository {
	return &RatingRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *RatingRepository) GetRating(ctx context.Context, gameID uuid.UUID, fingerprint string) (*domain.Rating, error) {
	ratingTbl := domain.GetRatingTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(ratingTbl.ID, ratingTbl.GameID, ratingTbl.ViewerFingerprint, ratingTbl.Value, ratingTbl.CreatedAt).
		From(ratingTbl.TableName()).
		Where(fmt.Sprintf("%s = ?", ratingTbl.GameID), gameID).
		And(fmt.Sprintf("%s = ?", ratingTbl.ViewerFingerprint), fingerprint).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var rating domain.Rating
	if err := r.db.GetContext(ctx, &rating, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get rating", "gameId", gameID, "error", err)
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return &rating, nil
}

// UpsertRating relies on the conditional DO UPDATE: when the stored row is
// at or after cutoff the statement affects nothing and RETURNING yields no row.
func (r *RatingRepository) UpsertRating(ctx context.Context, rating *domain.Rating, cutoff time.Time) (*domain.Rating, error) {
	ratingTbl := domain.GetRatingTable()
	table := ratingTbl.TableName()
	if r.schema != "" {
		table = r.schema + "." + table
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, game_id, player_fp, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, player_fp) DO UPDATE SET
			rating = EXCLUDED.rating,
			created_at = EXCLUDED.created_at
		WHERE %[1]s.created_at < $6
		RETURNING id, game_id, player_fp, rating, created_at
	`, table)

	var stored domain.Rating
	err := r.db.QueryRowxContext(ctx, query,
		rating.ID,
		rating.GameID,
		rating.ViewerFingerprint,
		rating.Value,
		rating.CreatedAt,
		cutoff,
	).StructScan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.RatingDebounce
		}
		r.logger.Error("Failed to upsert rating", "gameId", rating.GameID, "error", err)
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	return &stored, nil
}
