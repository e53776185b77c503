package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/httputil"
)

var (
	requestIDKContextKey = "Request-ID"
	loggerContextKey     = "Logger"
	uidContextKey        = "User-ID"
	clientIDContextKey   = "Anon-Client-ID"
)

const anonCookieName = "anon_id"

func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New()
		ctx := context.WithValue(r.Context(), requestIDKContextKey, reqID.String())
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default()
		reqID, ok := r.Context().Value(requestIDKContextKey).(string)
		if ok && reqID != "" {
			logger = logger.With(slog.String("request_id", reqID))
		}
		logger = logger.With(slog.String("from", r.RemoteAddr))
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) LoggerExtensionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		userID, ok := r.Context().Value(uidContextKey).(uuid.UUID)
		if ok {
			logger = logger.With(slog.String("uid", userID.String()))
		}
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware rejects callers without a live token for a still-existing
// user.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		uid, err := s.authenticate(r)
		if err != nil {
			switch {
			case errors.Is(err, errorvalues.ErrInvalidToken):
				logger.Error("auth failed: invalid token")
				httputil.WriteErrorResponse(w, http.StatusUnauthorized, "authorization failed: invalid token", nil)
			case errors.Is(err, errorvalues.ErrUserNotFound):
				logger.Error("auth failed: user doesn't exist")
				httputil.WriteErrorResponse(w, http.StatusUnauthorized, "auth failed: user not found", nil)
			default:
				logger.Error("auth failed: internal error", slog.String("error", err.Error()))
				httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during authorization", nil)
			}
			return
		}
		ctx := context.WithValue(r.Context(), uidContextKey, uid)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// OptionalAuthMiddleware sets the uid when a valid token is present and lets
// everyone else through untouched.
func (s *Server) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		uid, err := s.authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), uidContextKey, uid)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// AnonClientMiddleware pins a stable anonymous client id on a cookie, so the
// anonstore namespace survives across requests.
func (s *Server) AnonClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var clientID string
		cookie, err := r.Cookie(anonCookieName)
		if err == nil && cookie.Value != "" {
			clientID = cookie.Value
		} else {
			clientID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     anonCookieName,
				Value:    clientID,
				Path:     "/",
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), clientIDContextKey, clientID)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(r *http.Request) (uuid.UUID, error) {
	tokenString, err := GetTokenFromHeader(r)
	if err != nil {
		return uuid.UUID{}, errorvalues.ErrInvalidToken
	}
	tokenClaims, err := s.jwtService.ParseToken(tokenString)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInvalidToken) {
			return uuid.UUID{}, err
		}
		return uuid.UUID{}, errorvalues.ErrInvalidToken
	}
	now := time.Now()
	if tokenClaims.ExpiresAt.Time.Before(now) || tokenClaims.NotBefore.Time.After(now) {
		return uuid.UUID{}, errorvalues.ErrInvalidToken
	}
	uid, err := uuid.Parse(tokenClaims.UserID)
	if err != nil {
		return uuid.UUID{}, errorvalues.ErrInvalidToken
	}
	// Assuring the user still exists
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	_, err = s.userService.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return uuid.UUID{}, err
		}
		return uuid.UUID{}, errors.New("error while searching for user: " + err.Error())
	}
	return uid, nil
}

func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if ok {
		return logger
	}
	return slog.Default()
}

func GetTokenFromHeader(r *http.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", errorvalues.ErrInvalidToken
	}
	parts := strings.Split(token, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errorvalues.ErrInvalidToken
	}
	return parts[1], nil
}

func GetUIDFromContext(r *http.Request) (uuid.UUID, error) {
	uid, ok := r.Context().Value(uidContextKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("uid invalid or doesn't exists")
	}
	return uid, nil
}

func GetClientIDFromContext(r *http.Request) (string, error) {
	clientID, ok := r.Context().Value(clientIDContextKey).(string)
	if !ok || clientID == "" {
		return "", errors.New("anon client id doesn't exists")
	}
	return clientID, nil
}
