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

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	_, err := ur.conn.Exec(ctx,
		`INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3);`,
		user.Username, user.Name, user.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrUserExists
			}
		}
		return errors.New("creating user db error: " + err.Error())
	}
	return nil
}

func (ur *UsersRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx,
		`SELECT id, username, name, image, password_hash, creator_bio, instagram_handle, tiktok_handle, created_at
		FROM users WHERE username = $1;`, username)
	if err := row.Scan(&user.ID, &user.Username, &user.Name, &user.Image, &user.PasswordHash,
		&user.CreatorBio, &user.InstagramHandle, &user.TiktokHandle, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by username error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	var user entity.User
	user.ID = uid
	row := ur.conn.QueryRow(ctx,
		`SELECT username, name, image, password_hash, creator_bio, instagram_handle, tiktok_handle, created_at
		FROM users WHERE id = $1;`, uid)
	if err := row.Scan(&user.Username, &user.Name, &user.Image, &user.PasswordHash,
		&user.CreatorBio, &user.InstagramHandle, &user.TiktokHandle, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return &user, nil
}

// UpdateCreatorProfile patches only the fields whose pointers are non-nil and
// returns the fresh row.
func (ur *UsersRepository) UpdateCreatorProfile(ctx context.Context, uid uuid.UUID, bio, instagram, tiktok *string) (*entity.User, error) {
	ct, err := ur.conn.Exec(ctx,
		`UPDATE users SET
			creator_bio = COALESCE($1, creator_bio),
			instagram_handle = COALESCE($2, instagram_handle),
			tiktok_handle = COALESCE($3, tiktok_handle)
		WHERE id = $4;`,
		bio, instagram, tiktok, uid,
	)
	if err != nil {
		return nil, errors.New("updating creator profile error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrUserNotFound
	}
	return ur.FindByID(ctx, uid)
}

func (ur *UsersRepository) ListCreators(ctx context.Context) ([]*entity.Creator, error) {
	rows, err := ur.conn.Query(ctx,
		`SELECT u.id, u.name, u.image, u.creator_bio,
			(SELECT COUNT(*) FROM friendships f
				WHERE f.status = 'accepted' AND (f.requester_id = u.id OR f.addressee_id = u.id)) AS follower_count
		FROM users u WHERE u.creator_bio <> ''
		ORDER BY follower_count DESC;`)
	if err != nil {
		return nil, errors.New("listing creators error: " + err.Error())
	}
	defer rows.Close()
	creators := make([]*entity.Creator, 0)
	for rows.Next() {
		c := entity.Creator{}
		err = rows.Scan(&c.ID, &c.Name, &c.Image, &c.CreatorBio, &c.FollowerCount)
		if err != nil {
			return nil, errors.New("creator row parsing error: " + err.Error())
		}
		creators = append(creators, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected creator rows error: " + rows.Err().Error())
	}
	return creators, nil
}

func (ur *UsersRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	ct, err := ur.conn.Exec(ctx, `DELETE FROM users WHERE id = $1;`, uid)
	if err != nil {
		return errors.New("deleting user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}
