package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type VisitsRepository struct {
	conn PgConnection
}

func NewVisitsRepo(conn PgConnection) *VisitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for visitsRepo: " + err.Error())
	}
	return &VisitsRepository{
		conn: conn,
	}
}

func (vr *VisitsRepository) Create(ctx context.Context, visit *entity.PlaceVisit) error {
	if visit == nil {
		return errors.New("visit is nil")
	}
	_, err := vr.conn.Exec(ctx,
		`INSERT INTO place_visits (user_id, place_id, neighborhood) VALUES ($1, $2, $3);`,
		visit.UserID, visit.PlaceID, visit.Neighborhood,
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
		return errors.New("creating visit db error: " + err.Error())
	}
	return nil
}

func (vr *VisitsRepository) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := vr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM place_visits WHERE user_id = $1;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting visits: " + err.Error())
	}
	return count, nil
}

func (vr *VisitsRepository) CountDistinctNeighborhoods(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := vr.conn.QueryRow(ctx,
		`SELECT COUNT(DISTINCT neighborhood) FROM place_visits WHERE user_id = $1 AND neighborhood <> '';`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting distinct neighborhoods: " + err.Error())
	}
	return count, nil
}

// ActivityDates returns the distinct calendar dates the user checked in,
// newest first.
func (vr *VisitsRepository) ActivityDates(ctx context.Context, uid uuid.UUID) ([]time.Time, error) {
	rows, err := vr.conn.Query(ctx,
		`SELECT DISTINCT visited_at::date AS day FROM place_visits WHERE user_id = $1 ORDER BY day DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting activity dates error: " + err.Error())
	}
	defer rows.Close()
	dates := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err = rows.Scan(&day); err != nil {
			return nil, errors.New("activity date parsing error: " + err.Error())
		}
		dates = append(dates, day)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected activity rows error: " + rows.Err().Error())
	}
	return dates, nil
}
