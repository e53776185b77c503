package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Kwazyyy/whereto-sub001/internal/anonstore"
	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

// SavesService routes save actions to the account-backed store or the
// anonymous per-client store. Callers pick a backend with ForUser/ForClient
// and never see which one they got.
type SavesService struct {
	savesRepo  repository.SavesRepositoryI
	visitsRepo repository.VisitsRepositoryI
	anon       *anonstore.Store
}

func NewSavesService(savesRepo repository.SavesRepositoryI, visitsRepo repository.VisitsRepositoryI, anon *anonstore.Store) *SavesService {
	if savesRepo == nil || visitsRepo == nil || anon == nil {
		log.Fatal("on saves service provided nil deps")
	}
	return &SavesService{
		savesRepo:  savesRepo,
		visitsRepo: visitsRepo,
		anon:       anon,
	}
}

func (ss *SavesService) ForUser(uid uuid.UUID) PlaceSaver {
	return &userSaver{repo: ss.savesRepo, uid: uid}
}

func (ss *SavesService) ForClient(clientID string) PlaceSaver {
	return &anonSaver{store: ss.anon, clientID: clientID}
}

func (ss *SavesService) RecordVisit(ctx context.Context, uid uuid.UUID, placeID, neighborhood string) error {
	if placeID == "" {
		return errors.Join(errorvalues.ErrValidation, errors.New("place id is empty"))
	}
	err := ss.visitsRepo.Create(ctx, &entity.PlaceVisit{
		UserID:       uid,
		PlaceID:      placeID,
		Neighborhood: neighborhood,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("visits repository error: " + err.Error())
	}
	return nil
}

func (ss *SavesService) LoadSkips(ctx context.Context, clientID, intent string) ([]string, error) {
	return ss.anon.LoadSkips(ctx, clientID, intent)
}

func (ss *SavesService) PersistSkips(ctx context.Context, clientID, intent string, placeIDs []string) error {
	return ss.anon.PersistSkips(ctx, clientID, intent, placeIDs)
}

func (ss *SavesService) ClearSkips(ctx context.Context, clientID, intent string) error {
	return ss.anon.ClearSkips(ctx, clientID, intent)
}

func (ss *SavesService) GetPrefs(ctx context.Context, clientID string) (*entity.Preferences, error) {
	return ss.anon.GetPrefs(ctx, clientID)
}

func (ss *SavesService) SetPrefs(ctx context.Context, clientID string, prefs *entity.Preferences) error {
	return ss.anon.SetPrefs(ctx, clientID, prefs)
}

// userSaver writes rows keyed by (user, place, intent); the database's unique
// index does the dedup and a lost race reads as success.
type userSaver struct {
	repo repository.SavesRepositoryI
	uid  uuid.UUID
}

func (us *userSaver) Save(ctx context.Context, place entity.Place, intent string, action entity.SaveAction) error {
	if err := validateSave(place, intent, action); err != nil {
		return err
	}
	if action == "" {
		action = entity.ActionSave
	}
	err := us.repo.Create(ctx, &entity.SavedPlace{
		UserID: us.uid,
		Place:  place,
		Intent: intent,
		Action: action,
	})
	if errors.Is(err, errorvalues.ErrPlaceAlreadySaved) {
		return nil
	}
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("saves repository error: " + err.Error())
	}
	return nil
}

func (us *userSaver) Remove(ctx context.Context, placeID string) error {
	err := us.repo.DeleteByPlace(ctx, us.uid, placeID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSaveNotFound) {
			return err
		}
		return errors.New("saves repository error: " + err.Error())
	}
	return nil
}

func (us *userSaver) IsSaved(ctx context.Context, placeID string) (bool, error) {
	saved, err := us.repo.Exists(ctx, us.uid, placeID)
	if err != nil {
		return false, errors.New("saves repository error: " + err.Error())
	}
	return saved, nil
}

func (us *userSaver) ListAll(ctx context.Context) ([]*entity.SavedPlace, error) {
	saves, err := us.repo.GetByUserID(ctx, us.uid, 500, 0)
	if err != nil {
		return nil, errors.New("saves repository error: " + err.Error())
	}
	return saves, nil
}

// anonSaver keeps everything in the client's own namespace. Dedup is by place
// id only; an intent change on a place that's already saved is a no-op.
type anonSaver struct {
	store    *anonstore.Store
	clientID string
}

func (as *anonSaver) Save(ctx context.Context, place entity.Place, intent string, action entity.SaveAction) error {
	if err := validateSave(place, intent, action); err != nil {
		return err
	}
	return as.store.SavePlace(ctx, as.clientID, place, intent)
}

func (as *anonSaver) Remove(ctx context.Context, placeID string) error {
	return as.store.RemovePlace(ctx, as.clientID, placeID)
}

func (as *anonSaver) IsSaved(ctx context.Context, placeID string) (bool, error) {
	return as.store.IsSaved(ctx, as.clientID, placeID)
}

func (as *anonSaver) ListAll(ctx context.Context) ([]*entity.SavedPlace, error) {
	return as.store.ListSaved(ctx, as.clientID)
}

func validateSave(place entity.Place, intent string, action entity.SaveAction) error {
	if place.ID == "" {
		return errors.Join(errorvalues.ErrValidation, errors.New("place id is empty"))
	}
	req := SavePlaceRequest{Place: place, Intent: intent, Action: action}
	err := validate.Struct(req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errorvalues.ErrValidation
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	return nil
}
