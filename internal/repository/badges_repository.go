package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type BadgesRepository struct {
	conn PgConnection
}

func NewBadgesRepo(conn PgConnection) *BadgesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for badgesRepo: " + err.Error())
	}
	return &BadgesRepository{
		conn: conn,
	}
}

// CreateEarned persists an earned badge. The (user_id, badge_type) unique
// index is the only concurrency guard: a concurrent award surfaces as
// ErrBadgeAlreadyEarned.
func (br *BadgesRepository) CreateEarned(ctx context.Context, uid uuid.UUID, badgeType string) error {
	_, err := br.conn.Exec(ctx,
		`INSERT INTO user_badges (user_id, badge_type) VALUES ($1, $2);`,
		uid, badgeType,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrBadgeAlreadyEarned
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating earned badge db error: " + err.Error())
	}
	return nil
}

func (br *BadgesRepository) GetEarnedTypes(ctx context.Context, uid uuid.UUID) (map[string]struct{}, error) {
	rows, err := br.conn.Query(ctx, `SELECT badge_type FROM user_badges WHERE user_id = $1;`, uid)
	if err != nil {
		return nil, errors.New("getting earned badge types error: " + err.Error())
	}
	defer rows.Close()
	types := make(map[string]struct{})
	for rows.Next() {
		var badgeType string
		if err = rows.Scan(&badgeType); err != nil {
			return nil, errors.New("earned badge type parsing error: " + err.Error())
		}
		types[badgeType] = struct{}{}
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected earned badge rows error: " + rows.Err().Error())
	}
	return types, nil
}

func (br *BadgesRepository) GetEarned(ctx context.Context, uid uuid.UUID) ([]*entity.EarnedBadge, error) {
	rows, err := br.conn.Query(ctx,
		`SELECT user_id, badge_type, earned_at FROM user_badges WHERE user_id = $1 ORDER BY earned_at;`, uid)
	if err != nil {
		return nil, errors.New("getting earned badges error: " + err.Error())
	}
	defer rows.Close()
	earned := make([]*entity.EarnedBadge, 0)
	for rows.Next() {
		b := entity.EarnedBadge{}
		if err = rows.Scan(&b.UserID, &b.BadgeType, &b.EarnedAt); err != nil {
			return nil, errors.New("earned badge row parsing error: " + err.Error())
		}
		earned = append(earned, &b)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected earned badge rows error: " + rows.Err().Error())
	}
	return earned, nil
}
