package server

import (
	"net/http"

	"OpenMusic/logger"

	"github.com/gorilla/mux"
)

// AlbumRequest represents the create/update album request body.
type AlbumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// CreateAlbumHandler handles album creation.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var req AlbumRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Year == 0 {
		writeFail(w, http.StatusBadRequest, "Name and year are required")
		return
	}

	albumID, err := h.albums.Create(r.Context(), req.Name, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"albumId": albumID})
}

// GetAlbumHandler returns an album with its songs. An optional ?q=
// query filters the songs by title or performer.
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	detail, err := h.albums.Get(r.Context(), albumID, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{"album": detail})
}

// UpdateAlbumHandler handles album updates.
func (h *APIHandler) UpdateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	var req AlbumRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Year == 0 {
		writeFail(w, http.StatusBadRequest, "Name and year are required")
		return
	}

	if err := h.albums.Update(r.Context(), albumID, req.Name, req.Year); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Album updated")
}

// DeleteAlbumHandler handles album deletion.
func (h *APIHandler) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	if err := h.albums.Delete(r.Context(), albumID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Album deleted")
}

// LikeAlbumHandler records a like by the authenticated user.
func (h *APIHandler) LikeAlbumHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	if err := h.albums.Like(r.Context(), albumID, callerID(r)); err != nil {
		writeError(w, err)
		return
	}

	logger.Debug("Album liked", logger.String("albumId", albumID))
	writeMessage(w, http.StatusCreated, "Album liked")
}

// UnlikeAlbumHandler removes the authenticated user's like.
func (h *APIHandler) UnlikeAlbumHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	if err := h.albums.Unlike(r.Context(), albumID, callerID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Like removed")
}

// GetAlbumLikesHandler returns the album's like count. The
// X-Data-Source header reports whether the value came from the cache
// or the database.
func (h *APIHandler) GetAlbumLikesHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	count, fromCache, err := h.albums.LikeCount(r.Context(), albumID)
	if err != nil {
		writeError(w, err)
		return
	}

	if fromCache {
		w.Header().Set("X-Data-Source", "cache")
	} else {
		w.Header().Set("X-Data-Source", "database")
	}
	writeSuccess(w, http.StatusOK, map[string]int64{"likes": count})
}
