package gamerepository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

func newRepo(t *testing.T) (*GameRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewGameRepository(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), ""), mock
}

func sampleGame() *domain.GameRecord {
	id := uuid.New()
	owner := uuid.New()
	return &domain.GameRecord{
		ID:             id,
		Slug:           "snake-k9x",
		Title:          "Snake",
		OwnerID:        owner,
		StorageLocator: "games/" + owner.String() + "/snake-k9x.html",
		Status:         domain.GameStatusPending,
		CreatedAt:      time.Unix(1700000000, 0).UTC(),
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	game := sampleGame()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO games (id, slug, title, description, bot_id, storage_path, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
	)).
		WithArgs(game.ID, game.Slug, game.Title, game.Description, game.OwnerID, game.StorageLocator, game.Status, game.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), game); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_UniqueViolationIsDuplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO games").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "games_slug_key"})

	err := repo.Create(context.Background(), sampleGame())
	if !errors.Is(err, errs.Duplicate) {
		t.Fatalf("err = %v, want Duplicate", err)
	}
}

func TestGet_NotFoundReturnsNil(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM games WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	game, err := repo.Get(context.Background(), uuid.New())
	if err != nil || game != nil {
		t.Fatalf("Get = %v, %v; want nil, nil", game, err)
	}
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)
	want := sampleGame()

	rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "bot_id", "storage_path", "status", "created_at"}).
		AddRow(want.ID.String(), want.Slug, want.Title, nil, want.OwnerID.String(), want.StorageLocator, string(want.Status), want.CreatedAt)
	mock.ExpectQuery("SELECT (.+) FROM games WHERE id = \\$1").WithArgs(want.ID).WillReturnRows(rows)

	got, err := repo.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != want.ID || got.Slug != want.Slug || got.Status != domain.GameStatusPending || got.Description != nil {
		t.Fatalf("Get = %+v", got)
	}
}

func TestExistsByStorageLocator(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM games WHERE storage_path = $1)")).
		WithArgs("games/x/y.html").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByStorageLocator(context.Background(), "games/x/y.html")
	if err != nil || !exists {
		t.Fatalf("exists = %v, err = %v", exists, err)
	}
}

func TestUpdateStatus_MissingRow(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE games SET status = $1 WHERE id = $2")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.GameStatusLive)
	if !errors.Is(err, errs.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
