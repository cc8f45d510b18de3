// Package gamerepository stores admitted game records in PostgreSQL.
package gamerepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/clawgames.net/internal/adapter/postgres/pgerr"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
	querybuilder "gitlab.com/clawgames.net/internal/utils"
)

var _ secondary.GameRepository = &GameRepository{}

// GameRepository implements secondary.GameRepository with PostgreSQL
type GameRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewGameRepository creates a new PostgreSQL game repository
func NewGameRepository(db *sqlx.DB, logger primary.Logger, schema string) *GameRepository {
	return &GameRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.GameRecord) error {
	gameTbl := domain.GetGameTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			gameTbl.ID, gameTbl.Slug, gameTbl.Title, gameTbl.Description,
			gameTbl.OwnerID, gameTbl.StorageLocator, gameTbl.Status, gameTbl.CreatedAt,
		).
		Into(gameTbl.TableName()).
		Values(
			game.ID, game.Slug, game.Title, game.Description,
			game.OwnerID, game.StorageLocator, game.Status, game.CreatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsUniqueViolation(err) {
			r.logger.Warn("Game record collides with an existing one", "slug", game.Slug, "constraint", pgerr.Constraint(err))
			return fmt.Errorf("failed to create game %s: %w", game.Slug, errs.Duplicate)
		}
		r.logger.Error("Failed to create game", "error", err)
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (r *GameRepository) Get(ctx context.Context, id uuid.UUID) (*domain.GameRecord, error) {
	gameTbl := domain.GetGameTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			gameTbl.ID, gameTbl.Slug, gameTbl.Title, gameTbl.Description,
			gameTbl.OwnerID, gameTbl.StorageLocator, gameTbl.Status, gameTbl.CreatedAt,
		).
		From(gameTbl.TableName()).
		Where(fmt.Sprintf("%s = ?", gameTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var game domain.GameRecord
	if err := r.db.GetContext(ctx, &game, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get game", "gameId", id, "error", err)
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

func (r *GameRepository) ExistsByStorageLocator(ctx context.Context, locator string) (bool, error) {
	gameTbl := domain.GetGameTable()
	inner, args := querybuilder.NewQueryBuilder(r.schema).
		Select("1").
		From(gameTbl.TableName()).
		Where(fmt.Sprintf("%s = ?", gameTbl.StorageLocator), locator).
		Build()

	query := sqlx.Rebind(sqlx.DOLLAR, fmt.Sprintf("SELECT EXISTS (%s)", inner))
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		r.logger.Error("Failed to look up game by storage path", "path", locator, "error", err)
		return false, fmt.Errorf("failed to look up game by storage path: %w", err)
	}

	return exists, nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GameStatus) error {
	gameTbl := domain.GetGameTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(gameTbl.TableName(), querybuilder.UpdateData{gameTbl.Status: status}).
		Where(fmt.Sprintf("%s = ?", gameTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update game status", "gameId", id, "error", err)
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("game %s: %w", id, errs.NotFound)
	}

	return nil
}
