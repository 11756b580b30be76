package server

import (
	"net/http"
	"strings"

	"OpenMusic/logger"

	"github.com/gorilla/mux"
)

// ExportRequest represents the export request body.
type ExportRequest struct {
	TargetEmail string `json:"targetEmail"`
}

// ExportPlaylistHandler enqueues an export job for a playlist. The
// response only acknowledges that the job is queued; a separate worker
// delivers the export by mail.
func (h *APIHandler) ExportPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]

	var req ExportRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TargetEmail == "" || !strings.Contains(req.TargetEmail, "@") {
		writeFail(w, http.StatusBadRequest, "A valid targetEmail is required")
		return
	}

	if err := h.exporter.Request(r.Context(), playlistID, callerID(r), req.TargetEmail); err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Export requested",
		logger.String("playlistId", playlistID),
		logger.String("requester", callerID(r)),
	)
	writeMessage(w, http.StatusCreated, "Your export request is queued")
}
