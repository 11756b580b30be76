package repository

import (
	"context"
	"database/sql"
	"time"

	"OpenMusic/model"
)

// AlbumRepository defines album persistence operations.
type AlbumRepository interface {
	// CreateAlbum inserts a new album.
	CreateAlbum(ctx context.Context, album *model.Album) error

	// GetAlbumByID returns the album with the given id, or nil if absent.
	GetAlbumByID(ctx context.Context, id string) (*model.Album, error)

	// UpdateAlbum updates name and year of an album. Returns false if
	// no row matched the id.
	UpdateAlbum(ctx context.Context, id, name string, year int) (bool, error)

	// UpdateAlbumCover stores the cover URL of an album. Returns false
	// if no row matched the id.
	UpdateAlbumCover(ctx context.Context, id, coverURL string) (bool, error)

	// DeleteAlbum removes an album. Returns false if no row matched the id.
	DeleteAlbum(ctx context.Context, id string) (bool, error)
}

// MySQLAlbumRepository is the MySQL implementation of AlbumRepository.
type MySQLAlbumRepository struct {
	db *sql.DB
}

// NewMySQLAlbumRepository creates a new MySQL album repository.
func NewMySQLAlbumRepository(db *sql.DB) *MySQLAlbumRepository {
	return &MySQLAlbumRepository{db: db}
}

// CreateAlbum inserts a new album.
func (r *MySQLAlbumRepository) CreateAlbum(ctx context.Context, album *model.Album) error {
	query := `
		INSERT INTO albums (id, name, year, cover_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		album.ID,
		album.Name,
		album.Year,
		album.CoverURL,
		now,
		now,
	)
	return err
}

// GetAlbumByID returns the album with the given id, or nil if absent.
func (r *MySQLAlbumRepository) GetAlbumByID(ctx context.Context, id string) (*model.Album, error) {
	query := `
		SELECT id, name, year, cover_url, created_at, updated_at
		FROM albums
		WHERE id = ?
	`

	album := &model.Album{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&album.ID,
		&album.Name,
		&album.Year,
		&album.CoverURL,
		&album.CreatedAt,
		&album.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return album, nil
}

// UpdateAlbum updates name and year of an album.
func (r *MySQLAlbumRepository) UpdateAlbum(ctx context.Context, id, name string, year int) (bool, error) {
	query := `UPDATE albums SET name = ?, year = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, name, year, time.Now(), id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateAlbumCover stores the cover URL of an album.
func (r *MySQLAlbumRepository) UpdateAlbumCover(ctx context.Context, id, coverURL string) (bool, error) {
	query := `UPDATE albums SET cover_url = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, coverURL, time.Now(), id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteAlbum removes an album.
func (r *MySQLAlbumRepository) DeleteAlbum(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
