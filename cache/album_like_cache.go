package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// likeCountTTL bounds the staleness of a cached like count. A write to
// the album's likes invalidates the entry earlier.
const likeCountTTL = 30 * time.Minute

// likeCountKey builds the cache key for an album's like count.
func likeCountKey(albumID string) string {
	return fmt.Sprintf("album-likes:%s", albumID)
}

// AlbumLikeCache is a read-through cache for album like counts. The
// database COUNT is the source of truth; entries here are deleted on
// every like/unlike rather than updated in place.
type AlbumLikeCache struct {
	client *redis.Client
}

// NewAlbumLikeCache creates a like-count cache over the given client.
func NewAlbumLikeCache(client *redis.Client) *AlbumLikeCache {
	return &AlbumLikeCache{client: client}
}

// Get returns the cached count for the album and whether the entry was
// present. A missing key is a miss, not an error.
func (c *AlbumLikeCache) Get(ctx context.Context, albumID string) (int64, bool, error) {
	val, err := c.client.Get(ctx, likeCountKey(albumID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get like count from cache: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return 0, false, nil
	}
	return count, true, nil
}

// Set stores the count for the album with the bounded TTL. Concurrent
// populators after a miss race freely; last writer wins.
func (c *AlbumLikeCache) Set(ctx context.Context, albumID string, count int64) error {
	err := c.client.Set(ctx, likeCountKey(albumID), strconv.FormatInt(count, 10), likeCountTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache like count: %w", err)
	}
	return nil
}

// Invalidate removes the album's cached count. Deleting a key that does
// not exist is not an error.
func (c *AlbumLikeCache) Invalidate(ctx context.Context, albumID string) error {
	if err := c.client.Del(ctx, likeCountKey(albumID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate like count cache: %w", err)
	}
	return nil
}
