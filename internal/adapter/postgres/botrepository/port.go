package botrepository

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

var _ secondary.BotPort = &botRepo{}

type botRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.BotPort {
	return &botRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (b botRepo) insert(bot *domain.Bot) querybuilder.QueryBuilder {
	botTbl := domain.GetBotTable()
	return querybuilder.NewQueryBuilder(b.schema).Insert(
		botTbl.ID, botTbl.Name, botTbl.APIKeyHash,
		botTbl.Bio, botTbl.Framework, botTbl.CreatedAt,
	).
		Into(botTbl.GetTableName()).
		Values(
			bot.ID, bot.Name, bot.APIKeyHash,
			bot.Bio, bot.Framework, bot.CreatedAt,
		)
}

func (b botRepo) Create(ctx context.Context, bot *domain.Bot) error {
	query, args := b.insert(bot).Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("failed to create bot %s: %w", bot.Name, errs.Duplicate)
		}
		return fmt.Errorf("failed to create bot: %w", err)
	}
	return nil
}

func (b botRepo) selectBy(ctx context.Context, column string, value interface{}) (*domain.Bot, error) {
	botTbl := domain.GetBotTable()
	query, args := querybuilder.NewQueryBuilder(b.schema).
		Select(
			botTbl.ID, botTbl.Name, botTbl.APIKeyHash,
			botTbl.Bio, botTbl.Framework, botTbl.CreatedAt,
		).
		From(botTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", column), value).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var bot domain.Bot
	err := b.db.GetContext(ctx, &bot, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &bot, nil
}

func (b botRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Bot, error) {
	bot, err := b.selectBy(ctx, domain.GetBotTable().ID, id)
	if err != nil {
		b.logger.Error("Failed to get bot", "botId", id, "error", err)
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}
	return bot, nil
}

// GetOrCreateByName is safe under concurrent first submissions from the same
// creator: the insert is a no-op when the name already exists.
func (b botRepo) GetOrCreateByName(ctx context.Context, bot *domain.Bot) (*domain.Bot, error) {
	botTbl := domain.GetBotTable()
	query, args := b.insert(bot).OnConflict(botTbl.Name).DoNothing().Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		b.logger.Error("Failed to create community bot", "name", bot.Name, "error", err)
		return nil, fmt.Errorf("failed to create community bot: %w", err)
	}

	stored, err := b.selectBy(ctx, botTbl.Name, bot.Name)
	if err != nil {
		b.logger.Error("Failed to get community bot", "name", bot.Name, "error", err)
		return nil, fmt.Errorf("failed to get community bot: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("community bot %s vanished after insert", bot.Name)
	}
	return stored, nil
}
