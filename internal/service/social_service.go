package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type SocialService struct {
	friendsRepo  repository.FriendsRepositoryI
	recsRepo     repository.RecommendationsRepositoryI
	savesRepo    repository.SavesRepositoryI
	waitlistRepo repository.WaitlistRepositoryI
}

func NewSocialService(
	friendsRepo repository.FriendsRepositoryI,
	recsRepo repository.RecommendationsRepositoryI,
	savesRepo repository.SavesRepositoryI,
	waitlistRepo repository.WaitlistRepositoryI,
) *SocialService {
	if friendsRepo == nil || recsRepo == nil || savesRepo == nil || waitlistRepo == nil {
		log.Fatal("on social service provided nil repos")
	}
	return &SocialService{
		friendsRepo:  friendsRepo,
		recsRepo:     recsRepo,
		savesRepo:    savesRepo,
		waitlistRepo: waitlistRepo,
	}
}

func (ss *SocialService) RequestFriend(ctx context.Context, uid, addresseeID uuid.UUID) error {
	if uid == addresseeID {
		return errors.Join(errorvalues.ErrValidation, errors.New("can't befriend yourself"))
	}
	err := ss.friendsRepo.Create(ctx, uid, addresseeID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrFriendRequestExists):
			return err
		case errors.Is(err, errorvalues.ErrUserNotFound):
			return err
		}
		return errors.New("friends repository error: " + err.Error())
	}
	return nil
}

func (ss *SocialService) AcceptFriend(ctx context.Context, uid, requesterID uuid.UUID) error {
	err := ss.friendsRepo.Accept(ctx, requesterID, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendRequestNotFound) {
			return err
		}
		return errors.New("friends repository error: " + err.Error())
	}
	return nil
}

// GetFriendSaves lists another user's saves, gated on an accepted friendship
// in either direction.
func (ss *SocialService) GetFriendSaves(ctx context.Context, uid, friendID uuid.UUID) ([]*entity.SavedPlace, error) {
	friends, err := ss.friendsRepo.AreFriends(ctx, uid, friendID)
	if err != nil {
		return nil, errors.New("friends repository error: " + err.Error())
	}
	if !friends {
		return nil, errorvalues.ErrNotFriends
	}
	saves, err := ss.savesRepo.GetByUserID(ctx, friendID, 100, 0)
	if err != nil {
		return nil, errors.New("saves repository error: " + err.Error())
	}
	return saves, nil
}

func (ss *SocialService) SendRecommendation(ctx context.Context, uid uuid.UUID, req *SendRecommendationRequest) error {
	if err := validateRequest(*req); err != nil {
		return err
	}
	friends, err := ss.friendsRepo.AreFriends(ctx, uid, req.ReceiverID)
	if err != nil {
		return errors.New("friends repository error: " + err.Error())
	}
	if !friends {
		return errorvalues.ErrNotFriends
	}
	err = ss.recsRepo.Create(ctx, &entity.Recommendation{
		SenderID:   uid,
		ReceiverID: req.ReceiverID,
		PlaceID:    req.PlaceID,
		Note:       req.Note,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("recommendations repository error: " + err.Error())
	}
	return nil
}

func (ss *SocialService) DeleteRecommendation(ctx context.Context, uid, recID uuid.UUID) error {
	rec, err := ss.recsRepo.GetByID(ctx, recID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecommendationNotFound) {
			return err
		}
		return errors.New("recommendations repository error: " + err.Error())
	}
	if rec.ReceiverID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ss.recsRepo.Delete(ctx, recID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecommendationNotFound) {
			return err
		}
		return errors.New("recommendations repository error: " + err.Error())
	}
	return nil
}

func (ss *SocialService) UnseenRecommendationCount(ctx context.Context, uid uuid.UUID) (int, error) {
	count, err := ss.recsRepo.CountUnseenFor(ctx, uid)
	if err != nil {
		return 0, errors.New("recommendations repository error: " + err.Error())
	}
	return count, nil
}

func (ss *SocialService) JoinWaitlist(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, errorvalues.ErrInvalidEmail
	}
	entry, err := ss.waitlistRepo.Create(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailAlreadyOnWaitlist) {
			return nil, err
		}
		return nil, errors.New("waitlist repository error: " + err.Error())
	}
	return entry, nil
}
