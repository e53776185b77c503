package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
)

func TestCreateEarnedBadge(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewBadgesRepo(conn)
	uid := uuid.New()
	badgeType := "first_save"
	query := regexp.QuoteMeta(`INSERT INTO user_badges (user_id, badge_type) VALUES ($1, $2);`)
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid, badgeType).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.CreateEarned(ctx, uid, badgeType)
		assert.NoError(t, err)
	})
	t.Run("already earned", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid, badgeType).
			WillReturnError(&pgconn.PgError{
				Code: "23505",
			})
		err := repo.CreateEarned(ctx, uid, badgeType)
		assert.ErrorIs(t, err, errorvalues.ErrBadgeAlreadyEarned)
	})
	t.Run("fk violation error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid, badgeType).
			WillReturnError(&pgconn.PgError{
				Code: "23503",
			})
		err := repo.CreateEarned(ctx, uid, badgeType)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid, badgeType).
			WillReturnError(errors.New("db error"))
		err := repo.CreateEarned(ctx, uid, badgeType)
		assert.Error(t, err)
	})
}

func TestGetEarnedTypes(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewBadgesRepo(conn)
	uid := uuid.New()
	query := regexp.QuoteMeta(`SELECT badge_type FROM user_badges WHERE user_id = $1;`)
	t.Run("returns earned set", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"badge_type"}).
				AddRow("first_save").
				AddRow("explorer"))
		types, err := repo.GetEarnedTypes(ctx, uid)
		assert.NoError(t, err)
		assert.Contains(t, types, "first_save")
		assert.Contains(t, types, "explorer")
		assert.Len(t, types, 2)
	})
	t.Run("empty for fresh user", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"badge_type"}))
		types, err := repo.GetEarnedTypes(ctx, uid)
		assert.NoError(t, err)
		assert.Empty(t, types)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetEarnedTypes(ctx, uid)
		assert.Error(t, err)
	})
}

func TestGetEarnedBadges(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewBadgesRepo(conn)
	uid := uuid.New()
	earnedAt := time.Now()
	query := regexp.QuoteMeta(`SELECT user_id, badge_type, earned_at FROM user_badges WHERE user_id = $1 ORDER BY earned_at;`)
	t.Run("returns earned badges", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"user_id", "badge_type", "earned_at"}).
				AddRow(uid, "first_save", earnedAt))
		earned, err := repo.GetEarned(ctx, uid)
		assert.NoError(t, err)
		assert.Len(t, earned, 1)
		assert.Equal(t, "first_save", earned[0].BadgeType)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetEarned(ctx, uid)
		assert.Error(t, err)
	})
}
