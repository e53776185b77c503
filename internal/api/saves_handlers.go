package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/service"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
	"github.com/Kwazyyy/whereto-sub001/pkg/httputil"
)

type SavePlaceRequest struct {
	Place  entity.Place `json:"place"`
	Intent string       `json:"intent"`
	Action string       `json:"action,omitempty"`
}

type RecordVisitRequest struct {
	PlaceID      string `json:"placeId"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

type PutSkipsRequest struct {
	PlaceIDs []string `json:"placeIds"`
}

// saverFor resolves the saving backend: an authenticated uid wins, otherwise
// the caller's anonymous namespace is used.
func (s *Server) saverFor(r *http.Request) (service.PlaceSaver, error) {
	uid, err := GetUIDFromContext(r)
	if err == nil {
		return s.savesService.ForUser(uid), nil
	}
	clientID, err := GetClientIDFromContext(r)
	if err != nil {
		return nil, err
	}
	return s.savesService.ForClient(clientID), nil
}

func (s *Server) SavePlace(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	saver, err := s.saverFor(r)
	if err != nil {
		logger.Error("saving place error: no session", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while saving place", nil)
		return
	}
	var req SavePlaceRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("saving place error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = saver.Save(ctx, req.Place, req.Intent, entity.SaveAction(req.Action))
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("saving place error: invalid save", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid save request", nil)
			return
		}
		logger.Error("saving place error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while saving place", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"success": true,
	})
	logger.Info("place saved", slog.String("place_id", req.Place.ID))
}

func (s *Server) ListSaves(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	saver, err := s.saverFor(r)
	if err != nil {
		logger.Error("listing saves error: no session", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while listing saves", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	saves, err := saver.ListAll(ctx)
	if err != nil {
		logger.Error("listing saves error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while listing saves", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, saves)
}

func (s *Server) IsPlaceSaved(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	saver, err := s.saverFor(r)
	if err != nil {
		logger.Error("checking save error: no session", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while checking save", nil)
		return
	}
	placeID := chi.URLParam(r, "placeID")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	saved, err := saver.IsSaved(ctx, placeID)
	if err != nil {
		logger.Error("checking save error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while checking save", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"saved": saved,
	})
}

func (s *Server) RemoveSave(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	saver, err := s.saverFor(r)
	if err != nil {
		logger.Error("removing save error: no session", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while removing save", nil)
		return
	}
	placeID := chi.URLParam(r, "placeID")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = saver.Remove(ctx, placeID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSaveNotFound) {
			logger.Error("removing save error: unexist save")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "save doesn't exist", nil)
			return
		}
		logger.Error("removing save error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while removing save", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
	})
	logger.Info("save removed", slog.String("place_id", placeID))
}

func (s *Server) RecordVisit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("recording visit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RecordVisitRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("recording visit error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.PlaceID == "" {
		logger.Error("recording visit error: empty place id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "placeId is required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.savesService.RecordVisit(ctx, uid, req.PlaceID, req.Neighborhood)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("recording visit error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("recording visit error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while recording visit", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"success": true,
	})
	logger.Info("visit recorded", slog.String("place_id", req.PlaceID))
}

func (s *Server) GetSkips(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	clientID, err := GetClientIDFromContext(r)
	if err != nil {
		logger.Error("getting skips error: no client id", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting skips", nil)
		return
	}
	intent := chi.URLParam(r, "intent")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	placeIDs, err := s.savesService.LoadSkips(ctx, clientID, intent)
	if err != nil {
		logger.Error("getting skips error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting skips", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"placeIds": placeIDs,
	})
}

func (s *Server) PutSkips(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	clientID, err := GetClientIDFromContext(r)
	if err != nil {
		logger.Error("putting skips error: no client id", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while putting skips", nil)
		return
	}
	intent := chi.URLParam(r, "intent")
	var req PutSkipsRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("putting skips error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.savesService.PersistSkips(ctx, clientID, intent, req.PlaceIDs)
	if err != nil {
		logger.Error("putting skips error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while putting skips", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

func (s *Server) ClearSkips(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	clientID, err := GetClientIDFromContext(r)
	if err != nil {
		logger.Error("clearing skips error: no client id", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while clearing skips", nil)
		return
	}
	intent := chi.URLParam(r, "intent")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.savesService.ClearSkips(ctx, clientID, intent)
	if err != nil {
		logger.Error("clearing skips error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while clearing skips", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

func (s *Server) GetPrefs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	clientID, err := GetClientIDFromContext(r)
	if err != nil {
		logger.Error("getting prefs error: no client id", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting prefs", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	prefs, err := s.savesService.GetPrefs(ctx, clientID)
	if err != nil {
		logger.Error("getting prefs error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting prefs", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, prefs)
}

func (s *Server) PutPrefs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	clientID, err := GetClientIDFromContext(r)
	if err != nil {
		logger.Error("putting prefs error: no client id", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while putting prefs", nil)
		return
	}
	var prefs entity.Preferences
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&prefs)
	if err != nil {
		logger.Error("putting prefs error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.savesService.SetPrefs(ctx, clientID, &prefs)
	if err != nil {
		logger.Error("putting prefs error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while putting prefs", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
	})
}
