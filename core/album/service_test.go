package album

import (
	"context"
	"strings"
	"testing"

	"OpenMusic/apperr"
	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/go-sql-driver/mysql"
)

// fakeCache is an in-memory LikeCache tracking hit/miss state.
type fakeCache struct {
	entries map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]int64{}}
}

func (c *fakeCache) Get(ctx context.Context, albumID string) (int64, bool, error) {
	count, ok := c.entries[albumID]
	return count, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, albumID string, count int64) error {
	c.entries[albumID] = count
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, albumID string) error {
	delete(c.entries, albumID)
	return nil
}

// memAlbumRepo implements the album lookups the like counter needs.
type memAlbumRepo struct {
	repository.AlbumRepository
	albums map[string]*model.Album
}

func (r *memAlbumRepo) GetAlbumByID(ctx context.Context, id string) (*model.Album, error) {
	return r.albums[id], nil
}

// memLikeRepo implements repository.AlbumLikeRepository in memory.
type memLikeRepo struct {
	likes map[string]bool // albumID+"/"+userID
}

func (r *memLikeRepo) CreateLike(ctx context.Context, like *model.AlbumLike) error {
	key := like.AlbumID + "/" + like.UserID
	if r.likes[key] {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	r.likes[key] = true
	return nil
}

func (r *memLikeRepo) DeleteLike(ctx context.Context, albumID, userID string) (bool, error) {
	key := albumID + "/" + userID
	if !r.likes[key] {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

func (r *memLikeRepo) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	var count int64
	for key := range r.likes {
		if strings.HasPrefix(key, albumID+"/") {
			count++
		}
	}
	return count, nil
}

type stubSongRepo struct {
	repository.SongRepository
}

func (stubSongRepo) SongsByAlbum(ctx context.Context, albumID, search string) ([]*model.SongSummary, error) {
	return []*model.SongSummary{}, nil
}

func newLikeTestService() (*Service, *fakeCache) {
	albums := &memAlbumRepo{albums: map[string]*model.Album{
		"album-1": {ID: "album-1", Name: "Debut", Year: 2001},
	}}
	likes := &memLikeRepo{likes: map[string]bool{}}
	cache := newFakeCache()
	return NewService(albums, stubSongRepo{}, likes, cache), cache
}

func TestLikeCount_ProvenanceStoreThenCache(t *testing.T) {
	svc, _ := newLikeTestService()
	ctx := context.Background()

	if err := svc.Like(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}

	count, fromCache, err := svc.LikeCount(ctx, "album-1")
	if err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}
	if count != 1 || fromCache {
		t.Errorf("first LikeCount = (%d, cache=%v), want (1, cache=false)", count, fromCache)
	}

	count, fromCache, err = svc.LikeCount(ctx, "album-1")
	if err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}
	if count != 1 || !fromCache {
		t.Errorf("second LikeCount = (%d, cache=%v), want (1, cache=true)", count, fromCache)
	}
}

func TestLike_WriteInvalidatesCache(t *testing.T) {
	svc, cache := newLikeTestService()
	ctx := context.Background()

	if err := svc.Like(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if _, _, err := svc.LikeCount(ctx, "album-1"); err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}
	if _, ok := cache.entries["album-1"]; !ok {
		t.Fatal("cache not populated after read")
	}

	// A second liker invalidates; the next read recomputes from the store.
	if err := svc.Like(ctx, "album-1", "user-2"); err != nil {
		t.Fatalf("second Like returned error: %v", err)
	}
	if _, ok := cache.entries["album-1"]; ok {
		t.Fatal("cache entry survived a write")
	}

	count, fromCache, err := svc.LikeCount(ctx, "album-1")
	if err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}
	if count != 2 || fromCache {
		t.Errorf("LikeCount after second like = (%d, cache=%v), want (2, cache=false)", count, fromCache)
	}
}

func TestLikeUnlike_RestoresPriorCount(t *testing.T) {
	svc, _ := newLikeTestService()
	ctx := context.Background()

	before, _, err := svc.LikeCount(ctx, "album-1")
	if err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}

	if err := svc.Like(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	// Read in between so the cache holds the intermediate value.
	if _, _, err := svc.LikeCount(ctx, "album-1"); err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}
	if err := svc.Unlike(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("Unlike returned error: %v", err)
	}

	after, _, err := svc.LikeCount(ctx, "album-1")
	if err != nil {
		t.Fatalf("LikeCount returned error: %v", err)
	}
	if after != before {
		t.Errorf("count after like+unlike = %d, want %d", after, before)
	}
}

func TestLike_DuplicateIsInvariant(t *testing.T) {
	svc, _ := newLikeTestService()
	ctx := context.Background()

	if err := svc.Like(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	err := svc.Like(ctx, "album-1", "user-1")
	if !apperr.IsInvariant(err) {
		t.Errorf("duplicate Like error = %v, want invariant", err)
	}
}

func TestLike_UnknownAlbumIsNotFound(t *testing.T) {
	svc, _ := newLikeTestService()
	ctx := context.Background()

	if err := svc.Like(ctx, "album-missing", "user-1"); !apperr.IsNotFound(err) {
		t.Errorf("Like(unknown album) error = %v, want not-found", err)
	}
	if _, _, err := svc.LikeCount(ctx, "album-missing"); !apperr.IsNotFound(err) {
		t.Errorf("LikeCount(unknown album) error = %v, want not-found", err)
	}
}

func TestUnlike_MissingLikeIsNotFound(t *testing.T) {
	svc, _ := newLikeTestService()
	ctx := context.Background()

	if err := svc.Unlike(ctx, "album-1", "user-1"); !apperr.IsNotFound(err) {
		t.Errorf("Unlike(no like) error = %v, want not-found", err)
	}
}
