package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by username. Can be used for login and availability checks
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates creator profile fields. Empty strings leave the field untouched
	UpdateCreatorProfile(ctx context.Context, uid uuid.UUID, bio, instagram, tiktok *string) (*entity.User, error)
	// Lists users with a creator profile along with accepted-follower counts
	ListCreators(ctx context.Context) ([]*entity.Creator, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type SavesRepositoryI interface {
	// Creates a save row. (user_id, place_id, intent) is unique
	Create(ctx context.Context, save *entity.SavedPlace) error
	// Inspects if user saved the place under any intent
	Exists(ctx context.Context, uid uuid.UUID, placeID string) (bool, error)
	// Deletes all of user's saves of placeID across intents
	DeleteByPlace(ctx context.Context, uid uuid.UUID, placeID string) error
	// Lists user's saves, most recent first
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.SavedPlace, error)
	// Returns count of user's saves
	CountByUserID(ctx context.Context, uid uuid.UUID) (int, error)
	// Returns cardinality of the set of distinct intents across user's saves
	CountDistinctIntents(ctx context.Context, uid uuid.UUID) (int, error)
}

type VisitsRepositoryI interface {
	// Records a check-in
	Create(ctx context.Context, visit *entity.PlaceVisit) error
	// Returns count of user's check-ins
	CountByUserID(ctx context.Context, uid uuid.UUID) (int, error)
	// Returns count of distinct neighborhoods across user's check-ins
	CountDistinctNeighborhoods(ctx context.Context, uid uuid.UUID) (int, error)
	// Returns distinct activity dates, newest first. Feeds streak counting
	ActivityDates(ctx context.Context, uid uuid.UUID) ([]time.Time, error)
}

type BadgesRepositoryI interface {
	// Persists an earned badge. (user_id, badge_type) is unique
	CreateEarned(ctx context.Context, uid uuid.UUID, badgeType string) error
	// Returns the set of badge types the user already earned
	GetEarnedTypes(ctx context.Context, uid uuid.UUID) (map[string]struct{}, error)
	// Lists the user's earned badges with timestamps
	GetEarned(ctx context.Context, uid uuid.UUID) ([]*entity.EarnedBadge, error)
}

type FriendsRepositoryI interface {
	// Creates a pending friendship request
	Create(ctx context.Context, requesterID, addresseeID uuid.UUID) error
	// Flips a pending request addressed to uid into accepted
	Accept(ctx context.Context, requesterID, addresseeID uuid.UUID) error
	// Inspects if two users are accepted friends, in either direction
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	// Returns count of user's accepted friendships
	CountAccepted(ctx context.Context, uid uuid.UUID) (int, error)
}

type RecommendationsRepositoryI interface {
	// Creates a recommendation
	Create(ctx context.Context, rec *entity.Recommendation) error
	// Searches recommendation with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Recommendation, error)
	// Deletes recommendation with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Returns count of recommendations sent by user
	CountSentBy(ctx context.Context, uid uuid.UUID) (int, error)
	// Returns count of unseen recommendations addressed to user
	CountUnseenFor(ctx context.Context, uid uuid.UUID) (int, error)
}

type CuratedListsRepositoryI interface {
	// Creates a curated list
	CreateList(ctx context.Context, list *entity.CuratedList) (uuid.UUID, error)
	// Searches list with given id, without items
	GetListByID(ctx context.Context, id uuid.UUID) (*entity.CuratedList, error)
	// Lists owner's lists, without items
	GetListsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.CuratedList, error)
	// Lists items of a list ordered by position
	GetItems(ctx context.Context, listID uuid.UUID) ([]*entity.CuratedListItem, error)
	// Appends an item at the end of the list. (list_id, place_id) is unique
	AddItem(ctx context.Context, item *entity.CuratedListItem) error
	// Deletes an item and closes the position gap, all in one transaction
	RemoveItemAndReindex(ctx context.Context, listID, itemID uuid.UUID) error
}

type WaitlistRepositoryI interface {
	// Creates a waitlist entry. Email is unique
	Create(ctx context.Context, email string) (*entity.WaitlistEntry, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
