package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type RecommendationsRepository struct {
	conn PgConnection
}

func NewRecommendationsRepo(conn PgConnection) *RecommendationsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for recommendationsRepo: " + err.Error())
	}
	return &RecommendationsRepository{
		conn: conn,
	}
}

func (rr *RecommendationsRepository) Create(ctx context.Context, rec *entity.Recommendation) error {
	if rec == nil {
		return errors.New("recommendation is nil")
	}
	_, err := rr.conn.Exec(ctx,
		`INSERT INTO recommendations (sender_id, receiver_id, place_id, note) VALUES ($1, $2, $3, $4);`,
		rec.SenderID, rec.ReceiverID, rec.PlaceID, rec.Note,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating recommendation db error: " + err.Error())
	}
	return nil
}

func (rr *RecommendationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recommendation, error) {
	var rec entity.Recommendation
	rec.ID = id
	row := rr.conn.QueryRow(ctx,
		`SELECT sender_id, receiver_id, place_id, note, seen_at, created_at FROM recommendations WHERE id = $1;`, id)
	if err := row.Scan(&rec.SenderID, &rec.ReceiverID, &rec.PlaceID, &rec.Note, &rec.SeenAt, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRecommendationNotFound
		}
		return nil, errors.New("getting recommendation by id error: " + err.Error())
	}
	return &rec, nil
}

func (rr *RecommendationsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM recommendations WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting recommendation error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRecommendationNotFound
	}
	return nil
}

func (rr *RecommendationsRepository) CountSentBy(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := rr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM recommendations WHERE sender_id = $1;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting sent recommendations: " + err.Error())
	}
	return count, nil
}

func (rr *RecommendationsRepository) CountUnseenFor(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := rr.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM recommendations WHERE receiver_id = $1 AND seen_at IS NULL;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting unseen recommendations: " + err.Error())
	}
	return count, nil
}
