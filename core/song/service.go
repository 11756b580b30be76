// Package song implements song CRUD and search.
package song

import (
	"context"

	"OpenMusic/apperr"
	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/google/uuid"
)

// Service implements song operations.
type Service struct {
	songs  repository.SongRepository
	albums repository.AlbumRepository
}

// NewService creates a song service.
func NewService(songs repository.SongRepository, albums repository.AlbumRepository) *Service {
	return &Service{songs: songs, albums: albums}
}

// Input carries the writable fields of a song.
type Input struct {
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

// Create adds a new song and returns its id. A referenced album must exist.
func (s *Service) Create(ctx context.Context, in Input) (string, error) {
	if err := s.checkAlbum(ctx, in.AlbumID); err != nil {
		return "", err
	}

	song := &model.Song{
		ID:        "song-" + uuid.NewString(),
		Title:     in.Title,
		Year:      in.Year,
		Genre:     in.Genre,
		Performer: in.Performer,
		Duration:  in.Duration,
		AlbumID:   in.AlbumID,
	}
	if err := s.songs.CreateSong(ctx, song); err != nil {
		return "", err
	}
	return song.ID, nil
}

// List returns songs filtered by optional title and performer substrings.
func (s *Service) List(ctx context.Context, title, performer string) ([]*model.SongSummary, error) {
	return s.songs.SearchSongs(ctx, title, performer)
}

// Get returns the song with the given id.
func (s *Service) Get(ctx context.Context, id string) (*model.Song, error) {
	song, err := s.songs.GetSongByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, apperr.NotFound("song not found")
	}
	return song, nil
}

// Update replaces the writable fields of a song.
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	if err := s.checkAlbum(ctx, in.AlbumID); err != nil {
		return err
	}

	song := &model.Song{
		ID:        id,
		Title:     in.Title,
		Year:      in.Year,
		Genre:     in.Genre,
		Performer: in.Performer,
		Duration:  in.Duration,
		AlbumID:   in.AlbumID,
	}
	updated, err := s.songs.UpdateSong(ctx, song)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("song not found")
	}
	return nil
}

// Delete removes a song.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.songs.DeleteSong(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("song not found")
	}
	return nil
}

func (s *Service) checkAlbum(ctx context.Context, albumID *string) error {
	if albumID == nil || *albumID == "" {
		return nil
	}
	album, err := s.albums.GetAlbumByID(ctx, *albumID)
	if err != nil {
		return err
	}
	if album == nil {
		return apperr.NotFound("album not found")
	}
	return nil
}
