package server

import (
	"net/http"

	"OpenMusic/logger"
)

// CollaborationRequest represents the add/remove collaboration request body.
type CollaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

// AddCollaborationHandler grants a user access to a playlist. Owner only.
func (h *APIHandler) AddCollaborationHandler(w http.ResponseWriter, r *http.Request) {
	var req CollaborationRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlaylistID == "" || req.UserID == "" {
		writeFail(w, http.StatusBadRequest, "playlistId and userId are required")
		return
	}

	collabID, err := h.playlists.AddCollaborator(r.Context(), req.PlaylistID, req.UserID, callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Collaborator added",
		logger.String("playlistId", req.PlaylistID),
		logger.String("userId", req.UserID),
	)
	writeSuccess(w, http.StatusCreated, map[string]string{"collaborationId": collabID})
}

// RemoveCollaborationHandler revokes a user's access to a playlist. Owner only.
func (h *APIHandler) RemoveCollaborationHandler(w http.ResponseWriter, r *http.Request) {
	var req CollaborationRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlaylistID == "" || req.UserID == "" {
		writeFail(w, http.StatusBadRequest, "playlistId and userId are required")
		return
	}

	if err := h.playlists.RemoveCollaborator(r.Context(), req.PlaylistID, req.UserID, callerID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Collaborator removed")
}
