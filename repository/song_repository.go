package repository

import (
	"context"
	"database/sql"
	"time"

	"OpenMusic/model"
)

// SongRepository defines song persistence operations.
type SongRepository interface {
	// CreateSong inserts a new song.
	CreateSong(ctx context.Context, song *model.Song) error

	// GetSongByID returns the song with the given id, or nil if absent.
	GetSongByID(ctx context.Context, id string) (*model.Song, error)

	// SearchSongs lists songs, optionally filtered by title and
	// performer substrings (case-insensitive).
	SearchSongs(ctx context.Context, title, performer string) ([]*model.SongSummary, error)

	// SongsByAlbum lists songs belonging to an album, optionally
	// filtered by a title/performer substring.
	SongsByAlbum(ctx context.Context, albumID, search string) ([]*model.SongSummary, error)

	// UpdateSong updates a song. Returns false if no row matched the id.
	UpdateSong(ctx context.Context, song *model.Song) (bool, error)

	// DeleteSong removes a song. Returns false if no row matched the id.
	DeleteSong(ctx context.Context, id string) (bool, error)
}

// MySQLSongRepository is the MySQL implementation of SongRepository.
type MySQLSongRepository struct {
	db *sql.DB
}

// NewMySQLSongRepository creates a new MySQL song repository.
func NewMySQLSongRepository(db *sql.DB) *MySQLSongRepository {
	return &MySQLSongRepository{db: db}
}

// CreateSong inserts a new song.
func (r *MySQLSongRepository) CreateSong(ctx context.Context, song *model.Song) error {
	query := `
		INSERT INTO songs (id, title, year, genre, performer, duration, album_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		song.ID,
		song.Title,
		song.Year,
		song.Genre,
		song.Performer,
		song.Duration,
		song.AlbumID,
		now,
		now,
	)
	return err
}

// GetSongByID returns the song with the given id, or nil if absent.
func (r *MySQLSongRepository) GetSongByID(ctx context.Context, id string) (*model.Song, error) {
	query := `
		SELECT id, title, year, genre, performer, duration, album_id, created_at, updated_at
		FROM songs
		WHERE id = ?
	`

	song := &model.Song{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&song.ID,
		&song.Title,
		&song.Year,
		&song.Genre,
		&song.Performer,
		&song.Duration,
		&song.AlbumID,
		&song.CreatedAt,
		&song.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return song, nil
}

// SearchSongs lists songs, optionally filtered by title and performer.
func (r *MySQLSongRepository) SearchSongs(ctx context.Context, title, performer string) ([]*model.SongSummary, error) {
	query := `SELECT id, title, performer FROM songs WHERE 1=1`
	args := []interface{}{}

	if title != "" {
		query += ` AND LOWER(title) LIKE LOWER(?)`
		args = append(args, "%"+title+"%")
	}
	if performer != "" {
		query += ` AND LOWER(performer) LIKE LOWER(?)`
		args = append(args, "%"+performer+"%")
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

// SongsByAlbum lists songs belonging to an album.
func (r *MySQLSongRepository) SongsByAlbum(ctx context.Context, albumID, search string) ([]*model.SongSummary, error) {
	query := `SELECT id, title, performer FROM songs WHERE album_id = ?`
	args := []interface{}{albumID}

	if search != "" {
		query += ` AND (LOWER(title) LIKE LOWER(?) OR LOWER(performer) LIKE LOWER(?))`
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

// UpdateSong updates a song.
func (r *MySQLSongRepository) UpdateSong(ctx context.Context, song *model.Song) (bool, error) {
	query := `
		UPDATE songs
		SET title = ?, year = ?, genre = ?, performer = ?, duration = ?, album_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		song.Title,
		song.Year,
		song.Genre,
		song.Performer,
		song.Duration,
		song.AlbumID,
		time.Now(),
		song.ID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteSong removes a song.
func (r *MySQLSongRepository) DeleteSong(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanSongSummaries(rows *sql.Rows) ([]*model.SongSummary, error) {
	songs := []*model.SongSummary{}
	for rows.Next() {
		song := &model.SongSummary{}
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}
