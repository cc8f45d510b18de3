package ratingrepository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

var ratingColumns = []string{"id", "game_id", "player_fp", "rating", "created_at"}

func newRepo(t *testing.T) (*RatingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRatingRepository(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), ""), mock
}

func TestUpsertRating_Written(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Unix(1700000000, 0).UTC()
	rating := &domain.Rating{
		ID:                uuid.New(),
		GameID:            uuid.New(),
		ViewerFingerprint: "fp-0123456789abcdef",
		Value:             4,
		CreatedAt:         now,
	}
	cutoff := now.Add(-5 * time.Second)

	mock.ExpectQuery("INSERT INTO ratings (.+) ON CONFLICT \\(game_id, player_fp\\) DO UPDATE SET (.+) WHERE ratings.created_at < \\$6").
		WithArgs(rating.ID, rating.GameID, rating.ViewerFingerprint, rating.Value, rating.CreatedAt, cutoff).
		WillReturnRows(sqlmock.NewRows(ratingColumns).
			AddRow(rating.ID.String(), rating.GameID.String(), rating.ViewerFingerprint, 4, now))

	got, err := repo.UpsertRating(context.Background(), rating, cutoff)
	if err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}
	if got.Value != 4 || got.ID != rating.ID {
		t.Fatalf("got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpsertRating_NoRowIsDebounce(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO ratings").WillReturnRows(sqlmock.NewRows(ratingColumns))

	_, err := repo.UpsertRating(context.Background(), &domain.Rating{ID: uuid.New(), GameID: uuid.New()}, time.Now())
	if !errors.Is(err, errs.RatingDebounce) {
		t.Fatalf("err = %v, want RatingDebounce", err)
	}
}

func TestGetRating_Absent(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM ratings WHERE game_id = \\$1 AND player_fp = \\$2").
		WillReturnRows(sqlmock.NewRows(ratingColumns))

	got, err := repo.GetRating(context.Background(), uuid.New(), "fp-0123456789abcdef")
	if err != nil || got != nil {
		t.Fatalf("GetRating = %v, %v", got, err)
	}
}
