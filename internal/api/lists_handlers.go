package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/service"
	"github.com/Kwazyyy/whereto-sub001/pkg/httputil"
)

type CreateListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type AddListItemRequest struct {
	PlaceID string `json:"placeId"`
	Note    string `json:"note,omitempty"`
}

func (s *Server) CreateCuratedList(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("creating list error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateListRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("creating list error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	list, err := s.listsService.CreateList(ctx, uid, &service.CreateListRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("creating list error: invalid list data", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid list data", nil)
			return
		}
		logger.Error("creating list error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while creating list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, list)
	logger.Info("curated list created", slog.String("list_id", list.ID.String()))
}

func (s *Server) GetMyCuratedLists(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("getting lists error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	lists, err := s.listsService.GetMine(ctx, uid)
	if err != nil {
		logger.Error("getting lists error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting lists", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, lists)
}

func (s *Server) AddCuratedListItem(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("adding list item error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	listID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("adding list item error: invalid list id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid list id", nil)
		return
	}
	var req AddListItemRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("adding list item error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	item, err := s.listsService.AddItem(ctx, listID, uid, &service.AddListItemRequest{
		PlaceID: req.PlaceID,
		Note:    req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrListNotFound):
			logger.Error("adding list item error: unexist list")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "list doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("adding list item error: wrong owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "list belongs to another user", nil)
			return
		case errors.Is(err, errorvalues.ErrListItemExists):
			logger.Error("adding list item error: duplicate place")
			httputil.WriteErrorResponse(w, http.StatusConflict, "place is already on the list", nil)
			return
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("adding list item error: invalid item data", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid item data", nil)
			return
		default:
			logger.Error("adding list item error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while adding list item", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"item": item,
	})
	logger.Info("list item added", slog.String("list_id", listID.String()))
}

func (s *Server) RemoveCuratedListItem(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("removing list item error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	listID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("removing list item error: invalid list id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid list id", nil)
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		logger.Error("removing list item error: invalid item id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid item id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.listsService.RemoveItem(ctx, listID, itemID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrListNotFound):
			logger.Error("removing list item error: unexist list")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "list doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("removing list item error: wrong owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "list belongs to another user", nil)
			return
		case errors.Is(err, errorvalues.ErrListItemNotFound):
			logger.Error("removing list item error: unexist item")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "list item doesn't exist", nil)
			return
		default:
			logger.Error("removing list item error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while removing list item", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
	})
	logger.Info("list item removed", slog.String("list_id", listID.String()))
}
