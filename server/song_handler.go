package server

import (
	"net/http"

	"OpenMusic/core/song"

	"github.com/gorilla/mux"
)

// SongRequest represents the create/update song request body.
type SongRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (req *SongRequest) validate() string {
	if req.Title == "" || req.Year == 0 || req.Genre == "" || req.Performer == "" {
		return "Title, year, genre and performer are required"
	}
	return ""
}

func (req *SongRequest) input() song.Input {
	return song.Input{
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
}

// CreateSongHandler handles song creation.
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	songID, err := h.songs.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"songId": songID})
}

// ListSongsHandler lists songs, optionally filtered by ?title= and ?performer=.
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.List(r.Context(), r.URL.Query().Get("title"), r.URL.Query().Get("performer"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// GetSongHandler returns one song.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.songs.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{"song": s})
}

// UpdateSongHandler handles song updates.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.songs.Update(r.Context(), mux.Vars(r)["id"], req.input()); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Song updated")
}

// DeleteSongHandler handles song deletion.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.songs.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Song deleted")
}
