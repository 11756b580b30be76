// Package playlist implements playlist creation, deletion, song
// membership, the activity log and collaborator management. All
// authorization goes through the access evaluator.
package playlist

import (
	"context"
	"time"

	"OpenMusic/apperr"
	"OpenMusic/core/access"
	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/google/uuid"
)

// Service is the playlist mutation engine.
type Service struct {
	access    *access.Evaluator
	playlists repository.PlaylistRepository
	collabs   repository.CollaborationRepository
	songs     repository.SongRepository
	users     repository.UserRepository
}

// NewService creates a playlist service.
func NewService(
	evaluator *access.Evaluator,
	playlists repository.PlaylistRepository,
	collabs repository.CollaborationRepository,
	songs repository.SongRepository,
	users repository.UserRepository,
) *Service {
	return &Service{
		access:    evaluator,
		playlists: playlists,
		collabs:   collabs,
		songs:     songs,
		users:     users,
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Create creates a playlist owned by ownerID and returns its id.
func (s *Service) Create(ctx context.Context, name, ownerID string) (string, error) {
	playlist := &model.Playlist{
		ID:      newID("playlist"),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.playlists.CreatePlaylist(ctx, playlist); err != nil {
		return "", err
	}
	return playlist.ID, nil
}

// Delete removes the playlist. Owner only; songs, activities and
// collaborations cascade with it.
func (s *Service) Delete(ctx context.Context, playlistID, callerID string) error {
	if err := s.access.RequireOwner(ctx, playlistID, callerID); err != nil {
		return err
	}
	return s.playlists.DeletePlaylist(ctx, playlistID)
}

// ListForUser returns every playlist the caller owns or collaborates on.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*model.PlaylistSummary, error) {
	return s.playlists.ListPlaylistsForUser(ctx, userID)
}

// AddSong adds a song to the playlist and records the activity. Owner
// or collaborator; the membership insert and the activity append are
// one transaction.
func (s *Service) AddSong(ctx context.Context, playlistID, songID, callerID string) error {
	if err := s.access.RequireAccess(ctx, playlistID, callerID); err != nil {
		return err
	}

	song, err := s.songs.GetSongByID(ctx, songID)
	if err != nil {
		return err
	}
	if song == nil {
		return apperr.NotFound("song not found")
	}

	edge := &model.PlaylistSong{
		ID:         newID("playlist-song"),
		PlaylistID: playlistID,
		SongID:     songID,
	}
	activity := &model.PlaylistActivity{
		ID:         newID("activity"),
		PlaylistID: playlistID,
		SongID:     songID,
		UserID:     callerID,
		Action:     model.ActivityAdd,
		Time:       time.Now(),
	}

	if err := s.playlists.AddSong(ctx, edge, activity); err != nil {
		// The unique index on (playlist, song) arbitrates racing adds;
		// the loser maps to the same conflict as a plain duplicate.
		if repository.IsDuplicateEntry(err) {
			return apperr.Invariant("song already in playlist")
		}
		return err
	}
	return nil
}

// RemoveSong removes a song from the playlist and records the activity.
// Owner or collaborator; the edge delete and the activity append are
// one transaction.
func (s *Service) RemoveSong(ctx context.Context, playlistID, songID, callerID string) error {
	if err := s.access.RequireAccess(ctx, playlistID, callerID); err != nil {
		return err
	}

	activity := &model.PlaylistActivity{
		ID:         newID("activity"),
		PlaylistID: playlistID,
		SongID:     songID,
		UserID:     callerID,
		Action:     model.ActivityDelete,
		Time:       time.Now(),
	}

	removed, err := s.playlists.RemoveSong(ctx, playlistID, songID, activity)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("song not found in playlist")
	}
	return nil
}

// Songs returns the playlist with its member songs. Owner or collaborator.
func (s *Service) Songs(ctx context.Context, playlistID, callerID string) (*model.PlaylistDetail, error) {
	if err := s.access.RequireAccess(ctx, playlistID, callerID); err != nil {
		return nil, err
	}

	summary, err := s.playlists.GetPlaylistDetail(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperr.NotFound("playlist not found")
	}

	songs, err := s.playlists.PlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	return &model.PlaylistDetail{
		ID:       summary.ID,
		Name:     summary.Name,
		Username: summary.Username,
		Songs:    songs,
	}, nil
}

// Activities returns the playlist's activity log ordered by time
// ascending. Owner or collaborator.
func (s *Service) Activities(ctx context.Context, playlistID, callerID string) ([]*model.ActivityEntry, error) {
	if err := s.access.RequireAccess(ctx, playlistID, callerID); err != nil {
		return nil, err
	}
	return s.playlists.PlaylistActivities(ctx, playlistID)
}

// AddCollaborator grants a user access to the playlist. Owner only; the
// owner cannot be their own collaborator and duplicate grants conflict.
func (s *Service) AddCollaborator(ctx context.Context, playlistID, userID, callerID string) (string, error) {
	if err := s.access.RequireOwner(ctx, playlistID, callerID); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.NotFound("user not found")
	}

	// RequireOwner already resolved the playlist; callerID is its owner.
	if userID == callerID {
		return "", apperr.Invariant("the playlist owner cannot be added as a collaborator")
	}

	collab := &model.Collaboration{
		ID:         newID("collab"),
		PlaylistID: playlistID,
		UserID:     userID,
	}
	if err := s.collabs.CreateCollaboration(ctx, collab); err != nil {
		if repository.IsDuplicateEntry(err) {
			return "", apperr.Invariant("user is already a collaborator on this playlist")
		}
		return "", err
	}
	return collab.ID, nil
}

// RemoveCollaborator revokes a user's access to the playlist. Owner only.
func (s *Service) RemoveCollaborator(ctx context.Context, playlistID, userID, callerID string) error {
	if err := s.access.RequireOwner(ctx, playlistID, callerID); err != nil {
		return err
	}

	removed, err := s.collabs.DeleteCollaboration(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("collaboration not found")
	}
	return nil
}
