// Package access decides whether a user may read or mutate a playlist.
// A user has access iff they own the playlist or hold a collaboration
// grant for it; owner-only operations use the stricter RequireOwner.
package access

import (
	"context"

	"OpenMusic/apperr"
	"OpenMusic/repository"
)

// Evaluator is the single place playlist authorization is decided.
// It is read-only; evaluation never writes.
type Evaluator struct {
	playlists repository.PlaylistRepository
	collabs   repository.CollaborationRepository
}

// NewEvaluator creates an evaluator over the given repositories.
func NewEvaluator(playlists repository.PlaylistRepository, collabs repository.CollaborationRepository) *Evaluator {
	return &Evaluator{playlists: playlists, collabs: collabs}
}

// HasAccess reports whether the user is the playlist's owner or a
// collaborator. A missing playlist is a not-found error, never an
// authorization one: existence is checked before ownership.
func (e *Evaluator) HasAccess(ctx context.Context, playlistID, userID string) (bool, error) {
	playlist, err := e.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return false, err
	}
	if playlist == nil {
		return false, apperr.NotFound("playlist not found")
	}

	if playlist.OwnerID == userID {
		return true, nil
	}

	return e.collabs.CollaborationExists(ctx, playlistID, userID)
}

// RequireAccess fails with an authorization error unless the user is
// the owner or a collaborator. Used for song mutation, song listing,
// activity reads and export requests.
func (e *Evaluator) RequireAccess(ctx context.Context, playlistID, userID string) error {
	ok, err := e.HasAccess(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Authorization("you are not allowed to access this playlist")
	}
	return nil
}

// RequireOwner fails with an authorization error unless the user is the
// owner. Strictly narrower than RequireAccess: only playlist deletion
// and collaborator management go through here.
func (e *Evaluator) RequireOwner(ctx context.Context, playlistID, userID string) error {
	playlist, err := e.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist == nil {
		return apperr.NotFound("playlist not found")
	}
	if playlist.OwnerID != userID {
		return apperr.Authorization("only the playlist owner may perform this operation")
	}
	return nil
}
