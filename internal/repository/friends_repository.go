package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
)

type FriendsRepository struct {
	conn PgConnection
}

func NewFriendsRepo(conn PgConnection) *FriendsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for friendsRepo: " + err.Error())
	}
	return &FriendsRepository{
		conn: conn,
	}
}

func (fr *FriendsRepository) Create(ctx context.Context, requesterID, addresseeID uuid.UUID) error {
	_, err := fr.conn.Exec(ctx,
		`INSERT INTO friendships (requester_id, addressee_id, status) VALUES ($1, $2, 'pending');`,
		requesterID, addresseeID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrFriendRequestExists
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating friendship db error: " + err.Error())
	}
	return nil
}

func (fr *FriendsRepository) Accept(ctx context.Context, requesterID, addresseeID uuid.UUID) error {
	ct, err := fr.conn.Exec(ctx,
		`UPDATE friendships SET status = 'accepted'
		WHERE requester_id = $1 AND addressee_id = $2 AND status = 'pending';`,
		requesterID, addresseeID,
	)
	if err != nil {
		return errors.New("accepting friendship error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrFriendRequestNotFound
	}
	return nil
}

func (fr *FriendsRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var friends bool
	row := fr.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM friendships
			WHERE status = 'accepted'
			AND ((requester_id = $1 AND addressee_id = $2) OR (requester_id = $2 AND addressee_id = $1)));`,
		a, b,
	)
	if err := row.Scan(&friends); err != nil {
		return false, errors.New("inspecting friendship error: " + err.Error())
	}
	return friends, nil
}

func (fr *FriendsRepository) CountAccepted(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := fr.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM friendships
		WHERE status = 'accepted' AND (requester_id = $1 OR addressee_id = $1);`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting friendships: " + err.Error())
	}
	return count, nil
}
