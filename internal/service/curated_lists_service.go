package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type CuratedListsService struct {
	repo repository.CuratedListsRepositoryI
}

func NewCuratedListsService(listsRepo repository.CuratedListsRepositoryI) *CuratedListsService {
	if listsRepo == nil {
		log.Fatal("on curated lists service provided nil repo")
	}
	return &CuratedListsService{
		repo: listsRepo,
	}
}

func (cls *CuratedListsService) CreateList(ctx context.Context, ownerID uuid.UUID, req *CreateListRequest) (*entity.CuratedList, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	list := &entity.CuratedList{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	}
	id, err := cls.repo.CreateList(ctx, list)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("curated lists repository error: " + err.Error())
	}
	created, err := cls.repo.GetListByID(ctx, id)
	if err != nil {
		return nil, errors.New("curated lists repository error: " + err.Error())
	}
	return created, nil
}

func (cls *CuratedListsService) GetMine(ctx context.Context, ownerID uuid.UUID) ([]*entity.CuratedList, error) {
	lists, err := cls.repo.GetListsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.New("curated lists repository error: " + err.Error())
	}
	for _, list := range lists {
		items, err := cls.repo.GetItems(ctx, list.ID)
		if err != nil {
			return nil, errors.New("curated lists repository error: " + err.Error())
		}
		list.Items = items
	}
	return lists, nil
}

func (cls *CuratedListsService) AddItem(ctx context.Context, listID, ownerID uuid.UUID, req *AddListItemRequest) (*entity.CuratedListItem, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	if err := cls.checkOwner(ctx, listID, ownerID); err != nil {
		return nil, err
	}
	item := &entity.CuratedListItem{
		ListID:  listID,
		PlaceID: req.PlaceID,
		Note:    req.Note,
	}
	err := cls.repo.AddItem(ctx, item)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrListItemExists):
			return nil, err
		case errors.Is(err, errorvalues.ErrListNotFound):
			return nil, err
		}
		return nil, errors.New("curated lists repository error: " + err.Error())
	}
	return item, nil
}

func (cls *CuratedListsService) RemoveItem(ctx context.Context, listID, itemID, ownerID uuid.UUID) error {
	if err := cls.checkOwner(ctx, listID, ownerID); err != nil {
		return err
	}
	err := cls.repo.RemoveItemAndReindex(ctx, listID, itemID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrListItemNotFound) {
			return err
		}
		return errors.New("curated lists repository error: " + err.Error())
	}
	return nil
}

func (cls *CuratedListsService) checkOwner(ctx context.Context, listID, ownerID uuid.UUID) error {
	list, err := cls.repo.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrListNotFound) {
			return err
		}
		return errors.New("curated lists repository error: " + err.Error())
	}
	if list.OwnerID != ownerID {
		return errorvalues.ErrWrongOwner
	}
	return nil
}

func validateRequest(req any) error {
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
