package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"OpenMusic/apperr"
	"OpenMusic/config"
	"OpenMusic/core/album"
	"OpenMusic/core/auth"
	"OpenMusic/core/export"
	"OpenMusic/core/playlist"
	"OpenMusic/core/song"
	"OpenMusic/logger"
	"OpenMusic/repository"
	"OpenMusic/storage"
)

// APIHandler bundles the services the HTTP handlers dispatch to.
type APIHandler struct {
	cfg       *config.Config
	users     repository.UserRepository
	albums    *album.Service
	songs     *song.Service
	playlists *playlist.Service
	exporter  *export.Dispatcher
	covers    *storage.CoverStore
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(
	cfg *config.Config,
	users repository.UserRepository,
	albums *album.Service,
	songs *song.Service,
	playlists *playlist.Service,
	exporter *export.Dispatcher,
	covers *storage.CoverStore,
) *APIHandler {
	return &APIHandler{
		cfg:       cfg,
		users:     users,
		albums:    albums,
		songs:     songs,
		playlists: playlists,
		exporter:  exporter,
		covers:    covers,
	}
}

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware checks for a valid JWT bearer token and injects the
// caller id into the request context. The services trust this id as
// given; token verification happens only here.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeFail(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			writeFail(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			writeFail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

// callerID returns the authenticated caller id put there by AuthMiddleware.
func callerID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// writeSuccess writes a success envelope with data.
func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// writeMessage writes a success envelope with a message only.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  "success",
		"message": message,
	})
}

// writeFail writes a fail envelope.
func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  "fail",
		"message": message,
	})
}

// writeError maps a service error to its client-visible status. The
// three domain kinds are never confused with each other or with
// infrastructure failures.
func writeError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		writeFail(w, http.StatusNotFound, err.Error())
	case apperr.KindAuthorization:
		writeFail(w, http.StatusForbidden, err.Error())
	case apperr.KindInvariant:
		writeFail(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Internal server error", logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":  "error",
			"message": "Internal server error",
		})
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
