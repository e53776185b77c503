package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID
	Username        string
	Name            string
	Image           string
	PasswordHash    string
	CreatorBio      string
	InstagramHandle string
	TiktokHandle    string
	CreatedAt       time.Time
}

// Creator is the public projection of a user with a creator profile.
type Creator struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image,omitempty"`
	CreatorBio    string    `json:"creator_bio"`
	FollowerCount int       `json:"follower_count"`
}

// Place is the snapshot carried on every save. The ID is the external place
// identifier (Google place id), not one of ours.
type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	PriceLevel   int      `json:"price_level,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	PhotoRef     string   `json:"photo_ref,omitempty"`
	PlaceType    string   `json:"type,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type SaveAction string

const (
	ActionSave  SaveAction = "save"
	ActionGoNow SaveAction = "go_now"
)

// SavedPlace is one saved entry in either storage mode. Authenticated rows
// carry ID/UserID/Action; anonymous entries carry only the snapshot, intent
// and SavedAt.
type SavedPlace struct {
	ID      uuid.UUID  `json:"id,omitempty"`
	UserID  uuid.UUID  `json:"uid,omitempty"`
	Place   Place      `json:"place"`
	Intent  string     `json:"intent"`
	Action  SaveAction `json:"action,omitempty"`
	SavedAt time.Time  `json:"saved_at"`
}

type PlaceVisit struct {
	ID           int64
	UserID       uuid.UUID
	PlaceID      string
	Neighborhood string
	VisitedAt    time.Time
}

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

type Friendship struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	AddresseeID uuid.UUID        `json:"addressee_id"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Recommendation struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	PlaceID    string     `json:"place_id"`
	Note       string     `json:"note,omitempty"`
	SeenAt     *time.Time `json:"seen_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CuratedList struct {
	ID          uuid.UUID          `json:"id"`
	OwnerID     uuid.UUID          `json:"owner_id"`
	Title       string             `json:"title"`
	Description string             `json:"desc,omitempty"`
	Items       []*CuratedListItem `json:"items,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CuratedListItem positions within a list are dense and zero-based; every
// removal re-indexes the remainder.
type CuratedListItem struct {
	ID       uuid.UUID `json:"id"`
	ListID   uuid.UUID `json:"list_id"`
	PlaceID  string    `json:"place_id"`
	Note     string    `json:"note,omitempty"`
	Position int       `json:"position"`
}

type WaitlistEntry struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Preferences is the client preferences blob, stored as-is.
type Preferences struct {
	Theme         string `json:"theme,omitempty"`
	DefaultIntent string `json:"default_intent,omitempty"`
}
