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

type SavesRepository struct {
	conn PgConnection
}

func NewSavesRepo(conn PgConnection) *SavesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for savesRepo: " + err.Error())
	}
	return &SavesRepository{
		conn: conn,
	}
}

func (sr *SavesRepository) Create(ctx context.Context, save *entity.SavedPlace) error {
	if save == nil {
		return errors.New("save is nil")
	}
	_, err := sr.conn.Exec(ctx,
		`INSERT INTO saved_places
			(user_id, place_id, name, address, lat, lng, price_level, rating, photo_ref, place_type, neighborhood, tags, intent, action)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		save.UserID, save.Place.ID, save.Place.Name, save.Place.Address,
		save.Place.Lat, save.Place.Lng, save.Place.PriceLevel, save.Place.Rating,
		save.Place.PhotoRef, save.Place.PlaceType, save.Place.Neighborhood, save.Place.Tags,
		save.Intent, save.Action,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrPlaceAlreadySaved
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating save db error: " + err.Error())
	}
	return nil
}

func (sr *SavesRepository) Exists(ctx context.Context, uid uuid.UUID, placeID string) (bool, error) {
	var exists bool
	row := sr.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_places WHERE user_id = $1 AND place_id = $2);`,
		uid, placeID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting if save exists error: " + err.Error())
	}
	return exists, nil
}

func (sr *SavesRepository) DeleteByPlace(ctx context.Context, uid uuid.UUID, placeID string) error {
	ct, err := sr.conn.Exec(ctx,
		`DELETE FROM saved_places WHERE user_id = $1 AND place_id = $2;`,
		uid, placeID,
	)
	if err != nil {
		return errors.New("deleting save error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrSaveNotFound
	}
	return nil
}

func (sr *SavesRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.SavedPlace, error) {
	rows, err := sr.conn.Query(ctx,
		`SELECT id, user_id, place_id, name, address, lat, lng, price_level, rating, photo_ref, place_type, neighborhood, tags, intent, action, created_at
		FROM saved_places WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		uid, limit, offset,
	)
	if err != nil {
		return nil, errors.New("getting saves by uid error: " + err.Error())
	}
	defer rows.Close()
	saves := make([]*entity.SavedPlace, 0)
	for rows.Next() {
		s := entity.SavedPlace{}
		err = rows.Scan(&s.ID, &s.UserID, &s.Place.ID, &s.Place.Name, &s.Place.Address,
			&s.Place.Lat, &s.Place.Lng, &s.Place.PriceLevel, &s.Place.Rating,
			&s.Place.PhotoRef, &s.Place.PlaceType, &s.Place.Neighborhood, &s.Place.Tags,
			&s.Intent, &s.Action, &s.SavedAt)
		if err != nil {
			return nil, errors.New("save row parsing error: " + err.Error())
		}
		saves = append(saves, &s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected save rows error: " + rows.Err().Error())
	}
	return saves, nil
}

func (sr *SavesRepository) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := sr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM saved_places WHERE user_id = $1;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting saves: " + err.Error())
	}
	return count, nil
}

func (sr *SavesRepository) CountDistinctIntents(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := sr.conn.QueryRow(ctx, `SELECT COUNT(DISTINCT intent) FROM saved_places WHERE user_id = $1;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting distinct intents: " + err.Error())
	}
	return count, nil
}
