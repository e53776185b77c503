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

type SendRecommendationRequest struct {
	ReceiverID string `json:"receiverId"`
	PlaceID    string `json:"placeId"`
	Note       string `json:"note,omitempty"`
}

type JoinWaitlistRequest struct {
	Email string `json:"email"`
}

func (s *Server) RequestFriend(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("friend request error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	addresseeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("friend request error: invalid user id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.socialService.RequestFriend(ctx, uid, addresseeID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("friend request error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrFriendRequestExists):
			logger.Error("friend request error: duplicate request")
			httputil.WriteErrorResponse(w, http.StatusConflict, "friend request already exists", nil)
			return
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("friend request error: invalid request", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid friend request", nil)
			return
		default:
			logger.Error("friend request error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while requesting friendship", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"success": true,
	})
	logger.Info("friend request sent", slog.String("addressee_id", addresseeID.String()))
}

func (s *Server) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("accepting friend error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	requesterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("accepting friend error: invalid user id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.socialService.AcceptFriend(ctx, uid, requesterID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendRequestNotFound) {
			logger.Error("accepting friend error: unexist request")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "friend request doesn't exist", nil)
			return
		}
		logger.Error("accepting friend error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while accepting friendship", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
	})
	logger.Info("friend request accepted", slog.String("requester_id", requesterID.String()))
}

func (s *Server) GetFriendSaves(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("getting friend saves error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	friendID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("getting friend saves error: invalid user id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	saves, err := s.socialService.GetFriendSaves(ctx, uid, friendID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNotFriends) {
			logger.Error("getting friend saves error: not friends")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "users aren't friends", nil)
			return
		}
		logger.Error("getting friend saves error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting friend saves", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, saves)
}

func (s *Server) SendRecommendation(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("sending recommendation error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SendRecommendationRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("sending recommendation error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		logger.Error("sending recommendation error: invalid receiver id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid receiver id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.socialService.SendRecommendation(ctx, uid, &service.SendRecommendationRequest{
		ReceiverID: receiverID,
		PlaceID:    req.PlaceID,
		Note:       req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrNotFriends):
			logger.Error("sending recommendation error: not friends")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "users aren't friends", nil)
			return
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("sending recommendation error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("sending recommendation error: invalid request", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid recommendation request", nil)
			return
		default:
			logger.Error("sending recommendation error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while sending recommendation", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"success": true,
	})
	logger.Info("recommendation sent", slog.String("receiver_id", receiverID.String()))
}

func (s *Server) DeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("deleting recommendation error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	recID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("deleting recommendation error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid recommendation id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.socialService.DeleteRecommendation(ctx, uid, recID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRecommendationNotFound):
			logger.Error("deleting recommendation error: unexist recommendation")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "recommendation doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("deleting recommendation error: wrong receiver")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "recommendation belongs to another user", nil)
			return
		default:
			logger.Error("deleting recommendation error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while deleting recommendation", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"ok": true,
	})
	logger.Info("recommendation deleted", slog.String("rec_id", recID.String()))
}

// UnseenRecommendationCount reports how many recommendations await the caller.
// Anonymous callers simply have none.
func (s *Server) UnseenRecommendationCount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
			"count": 0,
		})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	count, err := s.socialService.UnseenRecommendationCount(ctx, uid)
	if err != nil {
		logger.Error("counting recommendations error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while counting recommendations", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"count": count,
	})
}

func (s *Server) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req JoinWaitlistRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("joining waitlist error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.socialService.JoinWaitlist(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidEmail):
			logger.Error("joining waitlist error: invalid email")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "email has invalid format", nil)
			return
		case errors.Is(err, errorvalues.ErrEmailAlreadyOnWaitlist):
			logger.Error("joining waitlist error: duplicate email")
			httputil.WriteErrorResponse(w, http.StatusConflict, "email is already on the waitlist", nil)
			return
		default:
			logger.Error("joining waitlist error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while joining waitlist", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"success":       true,
		"waitlistEntry": entry,
	})
	logger.Info("waitlist joined")
}
