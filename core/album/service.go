// Package album implements album CRUD and the cache-backed like
// counter. The database COUNT over album_likes is the source of truth;
// the cache entry is invalidated on every like and unlike.
package album

import (
	"context"

	"OpenMusic/apperr"
	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/google/uuid"
)

// LikeCache is the cache contract the service needs: read-through get,
// TTL-bounded set, delete-on-write invalidation.
type LikeCache interface {
	Get(ctx context.Context, albumID string) (int64, bool, error)
	Set(ctx context.Context, albumID string, count int64) error
	Invalidate(ctx context.Context, albumID string) error
}

// Service implements album operations.
type Service struct {
	albums repository.AlbumRepository
	songs  repository.SongRepository
	likes  repository.AlbumLikeRepository
	cache  LikeCache
}

// NewService creates an album service.
func NewService(
	albums repository.AlbumRepository,
	songs repository.SongRepository,
	likes repository.AlbumLikeRepository,
	cache LikeCache,
) *Service {
	return &Service{albums: albums, songs: songs, likes: likes, cache: cache}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Create adds a new album and returns its id.
func (s *Service) Create(ctx context.Context, name string, year int) (string, error) {
	album := &model.Album{
		ID:   newID("album"),
		Name: name,
		Year: year,
	}
	if err := s.albums.CreateAlbum(ctx, album); err != nil {
		return "", err
	}
	return album.ID, nil
}

// Get returns the album with its songs, optionally filtered by a
// title/performer search term.
func (s *Service) Get(ctx context.Context, id, search string) (*model.AlbumDetail, error) {
	album, err := s.albums.GetAlbumByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, apperr.NotFound("album not found")
	}

	songs, err := s.songs.SongsByAlbum(ctx, id, search)
	if err != nil {
		return nil, err
	}

	return &model.AlbumDetail{Album: *album, Songs: songs}, nil
}

// Update changes an album's name and year.
func (s *Service) Update(ctx context.Context, id, name string, year int) error {
	updated, err := s.albums.UpdateAlbum(ctx, id, name, year)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("album not found")
	}
	return nil
}

// Delete removes an album.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.albums.DeleteAlbum(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("album not found")
	}
	return nil
}

// SetCover stores the uploaded cover's public URL on the album.
func (s *Service) SetCover(ctx context.Context, id, coverURL string) error {
	updated, err := s.albums.UpdateAlbumCover(ctx, id, coverURL)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("album not found")
	}
	return nil
}

// Like records that the user likes the album, then invalidates the
// cached count. A second like from the same user is a conflict.
func (s *Service) Like(ctx context.Context, albumID, userID string) error {
	album, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		return err
	}
	if album == nil {
		return apperr.NotFound("album not found")
	}

	like := &model.AlbumLike{
		ID:      newID("like"),
		AlbumID: albumID,
		UserID:  userID,
	}
	if err := s.likes.CreateLike(ctx, like); err != nil {
		if repository.IsDuplicateEntry(err) {
			return apperr.Invariant("album already liked")
		}
		return err
	}

	// Invalidate, never update in place.
	return s.cache.Invalidate(ctx, albumID)
}

// Unlike removes the user's like, then invalidates the cached count.
func (s *Service) Unlike(ctx context.Context, albumID, userID string) error {
	removed, err := s.likes.DeleteLike(ctx, albumID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("like not found")
	}

	return s.cache.Invalidate(ctx, albumID)
}

// LikeCount returns the album's like count and whether it came from the
// cache. On a miss the count is computed from the store and cached with
// a bounded TTL.
func (s *Service) LikeCount(ctx context.Context, albumID string) (int64, bool, error) {
	count, hit, err := s.cache.Get(ctx, albumID)
	if err != nil {
		return 0, false, err
	}
	if hit {
		return count, true, nil
	}

	album, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		return 0, false, err
	}
	if album == nil {
		return 0, false, apperr.NotFound("album not found")
	}

	count, err = s.likes.CountByAlbum(ctx, albumID)
	if err != nil {
		return 0, false, err
	}

	if err := s.cache.Set(ctx, albumID, count); err != nil {
		return 0, false, err
	}
	return count, false, nil
}
