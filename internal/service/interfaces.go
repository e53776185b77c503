package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type RegisterRequest struct {
	Username string `validate:"required,username"`
	Name     string `validate:"required,min=1,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type UpdateCreatorProfileRequest struct {
	CreatorBio      *string `validate:"omitempty,max=500"`
	InstagramHandle *string `validate:"omitempty,max=100"`
	TiktokHandle    *string `validate:"omitempty,max=100"`
}

type UserServiceI interface {
	// Validates credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, username, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Reports whether username is free. The requester's own name never blocks them
	CheckUsername(ctx context.Context, requesterID uuid.UUID, username string) (bool, error)
	UpdateCreatorProfile(ctx context.Context, uid uuid.UUID, req *UpdateCreatorProfileRequest) (*entity.User, error)
	ListCreators(ctx context.Context) ([]*entity.Creator, error)
}

type BadgeStatsServiceI interface {
	// Assembles the user's activity counters. A user with no activity yields
	// all zeroes, never an error
	ComputeStats(ctx context.Context, uid uuid.UUID) (*entity.StatsSnapshot, error)
}

// BadgeProgress pairs a definition with how far the user got toward it.
type BadgeProgress struct {
	Definition entity.BadgeDefinition `json:"definition"`
	Current    int                    `json:"current"`
	Earned     bool                   `json:"earned"`
}

type BadgeOverview struct {
	Earned      []*entity.EarnedBadge    `json:"earned"`
	Definitions []entity.BadgeDefinition `json:"definitions"`
	Progress    []BadgeProgress          `json:"progress"`
}

type BadgesServiceI interface {
	// Awards every definition the user newly qualifies for and returns exactly
	// those. Calling again without new activity returns an empty slice
	CheckAndAwardBadges(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error)
	GetBadgeOverview(ctx context.Context, uid uuid.UUID) (*BadgeOverview, error)
}

// PlaceSaver is one saving backend. The orchestrator hands out an account- or
// anonymous-backed implementation depending on the caller's session; the two
// never reconcile their contents.
type PlaceSaver interface {
	// Saving an already-saved place is a no-op, not an error
	Save(ctx context.Context, place entity.Place, intent string, action entity.SaveAction) error
	Remove(ctx context.Context, placeID string) error
	IsSaved(ctx context.Context, placeID string) (bool, error)
	// Most recently saved first
	ListAll(ctx context.Context) ([]*entity.SavedPlace, error)
}

type SavePlaceRequest struct {
	Place  entity.Place      `validate:"required"`
	Intent string            `validate:"required,intent"`
	Action entity.SaveAction `validate:"omitempty,oneof=save go_now"`
}

type SavesServiceI interface {
	ForUser(uid uuid.UUID) PlaceSaver
	ForClient(clientID string) PlaceSaver
	// Records a check-in; feeds the visit, neighborhood and streak stats
	RecordVisit(ctx context.Context, uid uuid.UUID, placeID, neighborhood string) error
	// Per-intent skip sets and the prefs blob, anonymous clients only
	LoadSkips(ctx context.Context, clientID, intent string) ([]string, error)
	PersistSkips(ctx context.Context, clientID, intent string, placeIDs []string) error
	ClearSkips(ctx context.Context, clientID, intent string) error
	GetPrefs(ctx context.Context, clientID string) (*entity.Preferences, error)
	SetPrefs(ctx context.Context, clientID string, prefs *entity.Preferences) error
}

type CreateListRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=1000"`
}

type AddListItemRequest struct {
	PlaceID string `validate:"required"`
	Note    string `validate:"max=500"`
}

type CuratedListsServiceI interface {
	CreateList(ctx context.Context, ownerID uuid.UUID, req *CreateListRequest) (*entity.CuratedList, error)
	// Owner's lists with items attached, items ordered by position
	GetMine(ctx context.Context, ownerID uuid.UUID) ([]*entity.CuratedList, error)
	AddItem(ctx context.Context, listID, ownerID uuid.UUID, req *AddListItemRequest) (*entity.CuratedListItem, error)
	RemoveItem(ctx context.Context, listID, itemID, ownerID uuid.UUID) error
}

type SendRecommendationRequest struct {
	ReceiverID uuid.UUID `validate:"required"`
	PlaceID    string    `validate:"required"`
	Note       string    `validate:"max=500"`
}

type SocialServiceI interface {
	RequestFriend(ctx context.Context, uid, addresseeID uuid.UUID) error
	AcceptFriend(ctx context.Context, uid, requesterID uuid.UUID) error
	// Fails with ErrNotFriends unless the two are accepted friends
	GetFriendSaves(ctx context.Context, uid, friendID uuid.UUID) ([]*entity.SavedPlace, error)
	SendRecommendation(ctx context.Context, uid uuid.UUID, req *SendRecommendationRequest) error
	// Receiver-only
	DeleteRecommendation(ctx context.Context, uid, recID uuid.UUID) error
	UnseenRecommendationCount(ctx context.Context, uid uuid.UUID) (int, error)
	JoinWaitlist(ctx context.Context, email string) (*entity.WaitlistEntry, error)
}

type PlacesServiceI interface {
	// Resolves a photo reference to the upstream photo URL
	ResolvePhotoURL(ctx context.Context, ref string) (string, error)
}
