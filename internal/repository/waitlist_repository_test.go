package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
)

func TestCreateWaitlistEntry(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewWaitlistRepo(conn)
	email := "test@example.com"
	query := regexp.QuoteMeta(`INSERT INTO waitlist (email) VALUES ($1) RETURNING id, created_at;`)
	t.Run("created", func(t *testing.T) {
		id := int64(1)
		createdAt := time.Now()
		conn.ExpectQuery(query).
			WithArgs(email).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))
		entry, err := repo.Create(ctx, email)
		assert.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Equal(t, email, entry.Email)
	})
	t.Run("duplicate email", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(email).
			WillReturnError(&pgconn.PgError{
				Code: "23505",
			})
		_, err := repo.Create(ctx, email)
		assert.ErrorIs(t, err, errorvalues.ErrEmailAlreadyOnWaitlist)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(email).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, email)
		assert.Error(t, err)
	})
}
