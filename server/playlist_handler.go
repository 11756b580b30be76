package server

import (
	"net/http"

	"OpenMusic/logger"

	"github.com/gorilla/mux"
)

// PlaylistRequest represents the create playlist request body.
type PlaylistRequest struct {
	Name string `json:"name"`
}

// PlaylistSongRequest represents the add/remove song request body.
type PlaylistSongRequest struct {
	SongID string `json:"songId"`
}

// CreatePlaylistHandler creates a playlist owned by the caller.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "Name is required")
		return
	}

	playlistID, err := h.playlists.Create(r.Context(), req.Name, callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Playlist created",
		logger.String("playlistId", playlistID),
		logger.String("owner", callerID(r)),
	)
	writeSuccess(w, http.StatusCreated, map[string]string{"playlistId": playlistID})
}

// ListPlaylistsHandler lists playlists the caller owns or collaborates on.
func (h *APIHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlists.ListForUser(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{"playlists": playlists})
}

// DeletePlaylistHandler deletes a playlist. Owner only.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]

	if err := h.playlists.Delete(r.Context(), playlistID, callerID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Playlist deleted")
}

// AddPlaylistSongHandler adds a song to a playlist. Owner or collaborator.
func (h *APIHandler) AddPlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]

	var req PlaylistSongRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID == "" {
		writeFail(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := h.playlists.AddSong(r.Context(), playlistID, req.SongID, callerID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Song added to playlist")
}

// GetPlaylistSongsHandler returns the playlist with its songs.
func (h *APIHandler) GetPlaylistSongsHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]

	detail, err := h.playlists.Songs(r.Context(), playlistID, callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{"playlist": detail})
}

// RemovePlaylistSongHandler removes a song from a playlist.
func (h *APIHandler) RemovePlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]

	var req PlaylistSongRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID == "" {
		writeFail(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := h.playlists.RemoveSong(r.Context(), playlistID, req.SongID, callerID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Song removed from playlist")
}

// GetPlaylistActivitiesHandler returns the playlist's activity log.
func (h *APIHandler) GetPlaylistActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]

	activities, err := h.playlists.Activities(r.Context(), playlistID, callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"playlistId": playlistID,
		"activities": activities,
	})
}
