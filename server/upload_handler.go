package server

import (
	"net/http"
	"strings"

	"OpenMusic/logger"

	"github.com/gorilla/mux"
)

// maxCoverSize caps cover uploads at 512 KB.
const maxCoverSize = 512 * 1024

// UploadCoverHandler stores an album cover image and records its URL.
func (h *APIHandler) UploadCoverHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]

	r.Body = http.MaxBytesReader(w, r.Body, maxCoverSize)
	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		writeFail(w, http.StatusRequestEntityTooLarge, "Cover image too large")
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Cover file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeFail(w, http.StatusBadRequest, "Cover must be an image")
		return
	}

	// The album must exist before we pay for the upload.
	if _, err := h.albums.Get(r.Context(), albumID, ""); err != nil {
		writeError(w, err)
		return
	}

	coverURL, err := h.covers.SaveCover(r.Context(), albumID, header.Filename, contentType, header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.albums.SetCover(r.Context(), albumID, coverURL); err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Cover uploaded",
		logger.String("albumId", albumID),
		logger.String("coverUrl", coverURL),
	)
	writeMessage(w, http.StatusCreated, "Cover uploaded")
}
