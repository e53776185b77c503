package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type WaitlistRepository struct {
	conn PgConnection
}

func NewWaitlistRepo(conn PgConnection) *WaitlistRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for waitlistRepo: " + err.Error())
	}
	return &WaitlistRepository{
		conn: conn,
	}
}

func (wr *WaitlistRepository) Create(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	entry.Email = email
	row := wr.conn.QueryRow(ctx,
		`INSERT INTO waitlist (email) VALUES ($1) RETURNING id, created_at;`, email)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return nil, errorvalues.ErrEmailAlreadyOnWaitlist
			}
		}
		return nil, errors.New("creating waitlist entry db error: " + err.Error())
	}
	return &entry, nil
}
