package errorvalues

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input the caller can fix; the route layer answers 400
	ErrValidation = errors.New("validation failed")

	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidUsername  = errors.New("username has invalid format")

	ErrBadgeAlreadyEarned = errors.New("badge already earned by user")

	ErrPlaceAlreadySaved = errors.New("place already saved")
	ErrSaveNotFound      = errors.New("saved place not found")

	ErrListNotFound     = errors.New("curated list doesn't exist")
	ErrListItemExists   = errors.New("place already on the list")
	ErrListItemNotFound = errors.New("list item doesn't exist")
	ErrWrongOwner       = errors.New("resource has different owner")

	ErrNotFriends             = errors.New("users are not accepted friends")
	ErrFriendRequestExists    = errors.New("friend request already exists")
	ErrFriendRequestNotFound  = errors.New("friend request doesn't exist")
	ErrRecommendationNotFound = errors.New("recommendation doesn't exist")

	ErrEmailAlreadyOnWaitlist = errors.New("email already on waitlist")
	ErrInvalidEmail           = errors.New("email has invalid format")

	ErrInvalidPhotoRef = errors.New("photo reference is empty or invalid")
)

// UpstreamError carries the status answered by an external API so the route
// layer can propagate it instead of masking it as 500.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.Status)
}
