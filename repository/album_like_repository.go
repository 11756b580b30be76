package repository

import (
	"context"
	"database/sql"
	"time"

	"OpenMusic/model"
)

// AlbumLikeRepository defines album-like persistence operations. The
// unique index on (album_id, user_id) enforces at most one like per
// user; a duplicate insert fails with a unique-constraint error.
type AlbumLikeRepository interface {
	// CreateLike inserts a like row. A duplicate (album, user) pair
	// surfaces as a unique-constraint error from the store.
	CreateLike(ctx context.Context, like *model.AlbumLike) error

	// DeleteLike removes a like row. Returns false if no row matched.
	DeleteLike(ctx context.Context, albumID, userID string) (bool, error)

	// CountByAlbum counts likes of an album. This is the source of
	// truth the cache is populated from.
	CountByAlbum(ctx context.Context, albumID string) (int64, error)
}

// MySQLAlbumLikeRepository is the MySQL implementation of AlbumLikeRepository.
type MySQLAlbumLikeRepository struct {
	db *sql.DB
}

// NewMySQLAlbumLikeRepository creates a new MySQL album-like repository.
func NewMySQLAlbumLikeRepository(db *sql.DB) *MySQLAlbumLikeRepository {
	return &MySQLAlbumLikeRepository{db: db}
}

// CreateLike inserts a like row.
func (r *MySQLAlbumLikeRepository) CreateLike(ctx context.Context, like *model.AlbumLike) error {
	query := `
		INSERT INTO album_likes (id, album_id, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		like.ID,
		like.AlbumID,
		like.UserID,
		time.Now(),
	)
	return err
}

// DeleteLike removes a like row.
func (r *MySQLAlbumLikeRepository) DeleteLike(ctx context.Context, albumID, userID string) (bool, error) {
	query := `DELETE FROM album_likes WHERE album_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, albumID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CountByAlbum counts likes of an album.
func (r *MySQLAlbumLikeRepository) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM album_likes WHERE album_id = ?`, albumID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
