package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/httputil"
)

func (s *Server) GetPlacePhoto(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ref := r.URL.Query().Get("ref")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	photoURL, err := s.placesService.ResolvePhotoURL(ctx, ref)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInvalidPhotoRef) {
			logger.Error("resolving photo error: missing ref")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "photo reference is required", nil)
			return
		}
		var upstreamErr *errorvalues.UpstreamError
		if errors.As(err, &upstreamErr) {
			logger.Error("resolving photo error: upstream failure", slog.Int("status", upstreamErr.Status))
			httputil.WriteErrorResponse(w, upstreamErr.Status, "photo provider failed", nil)
			return
		}
		logger.Error("resolving photo error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while resolving photo", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"photoUrl": photoURL,
	})
}
