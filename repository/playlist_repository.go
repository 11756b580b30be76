package repository

import (
	"context"
	"database/sql"

	"OpenMusic/model"
)

// PlaylistRepository defines playlist persistence operations, including
// the membership edges and the append-only activity log.
type PlaylistRepository interface {
	// CreatePlaylist inserts a new playlist.
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error

	// GetPlaylistByID returns the playlist with the given id, or nil if absent.
	GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error)

	// GetPlaylistDetail returns the playlist with its owner's username,
	// or nil if absent.
	GetPlaylistDetail(ctx context.Context, id string) (*model.PlaylistSummary, error)

	// ListPlaylistsForUser returns every playlist the user owns or
	// collaborates on, deduplicated by playlist id.
	ListPlaylistsForUser(ctx context.Context, userID string) ([]*model.PlaylistSummary, error)

	// DeletePlaylist removes the playlist and all of its membership
	// edges, activity rows and collaborations in one transaction.
	DeletePlaylist(ctx context.Context, id string) error

	// AddSong inserts the membership edge and appends the activity row
	// in one transaction. A duplicate edge surfaces as a
	// unique-constraint error and nothing is written.
	AddSong(ctx context.Context, edge *model.PlaylistSong, activity *model.PlaylistActivity) error

	// RemoveSong deletes the membership edge and appends the activity
	// row in one transaction. Returns false (and writes nothing) if the
	// edge does not exist.
	RemoveSong(ctx context.Context, playlistID, songID string, activity *model.PlaylistActivity) (bool, error)

	// HasSong reports whether the membership edge exists.
	HasSong(ctx context.Context, playlistID, songID string) (bool, error)

	// PlaylistSongs lists the member songs of a playlist.
	PlaylistSongs(ctx context.Context, playlistID string) ([]*model.SongSummary, error)

	// PlaylistActivities lists the activity log of a playlist ordered
	// by time ascending, resolved to usernames and song titles.
	PlaylistActivities(ctx context.Context, playlistID string) ([]*model.ActivityEntry, error)
}

// MySQLPlaylistRepository is the MySQL implementation of PlaylistRepository.
type MySQLPlaylistRepository struct {
	db *sql.DB
}

// NewMySQLPlaylistRepository creates a new MySQL playlist repository.
func NewMySQLPlaylistRepository(db *sql.DB) *MySQLPlaylistRepository {
	return &MySQLPlaylistRepository{db: db}
}

// CreatePlaylist inserts a new playlist.
func (r *MySQLPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	query := `INSERT INTO playlists (id, name, owner) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, playlist.ID, playlist.Name, playlist.OwnerID)
	return err
}

// GetPlaylistByID returns the playlist with the given id, or nil if absent.
func (r *MySQLPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	playlist := &model.Playlist{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner FROM playlists WHERE id = ?`, id,
	).Scan(&playlist.ID, &playlist.Name, &playlist.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return playlist, nil
}

// GetPlaylistDetail returns the playlist with its owner's username.
func (r *MySQLPlaylistRepository) GetPlaylistDetail(ctx context.Context, id string) (*model.PlaylistSummary, error) {
	query := `
		SELECT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON p.owner = u.id
		WHERE p.id = ?
	`

	summary := &model.PlaylistSummary{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&summary.ID, &summary.Name, &summary.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return summary, nil
}

// ListPlaylistsForUser returns every playlist the user owns or collaborates on.
func (r *MySQLPlaylistRepository) ListPlaylistsForUser(ctx context.Context, userID string) ([]*model.PlaylistSummary, error) {
	// DISTINCT guards against a playlist appearing via both branches;
	// by construction an owner never holds a collaboration row, but the
	// listing does not depend on that.
	query := `
		SELECT DISTINCT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON p.owner = u.id
		LEFT JOIN collaborations c ON c.playlist_id = p.id
		WHERE p.owner = ? OR c.user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []*model.PlaylistSummary{}
	for rows.Next() {
		p := &model.PlaylistSummary{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// DeletePlaylist removes the playlist and all dependent rows.
func (r *MySQLPlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Foreign keys are not enforced by the schema, so the cascade is
	// explicit: children first, then the playlist row.
	for _, query := range []string{
		`DELETE FROM playlist_songs WHERE playlist_id = ?`,
		`DELETE FROM playlist_activities WHERE playlist_id = ?`,
		`DELETE FROM collaborations WHERE playlist_id = ?`,
		`DELETE FROM playlists WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddSong inserts the membership edge and appends the activity row.
func (r *MySQLPlaylistRepository) AddSong(ctx context.Context, edge *model.PlaylistSong, activity *model.PlaylistActivity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO playlist_songs (id, playlist_id, song_id) VALUES (?, ?, ?)`,
		edge.ID, edge.PlaylistID, edge.SongID,
	)
	if err != nil {
		return err
	}

	if err := insertActivity(ctx, tx, activity); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveSong deletes the membership edge and appends the activity row.
func (r *MySQLPlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID string, activity *model.PlaylistActivity) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`,
		playlistID, songID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if err := insertActivity(ctx, tx, activity); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// HasSong reports whether the membership edge exists.
func (r *MySQLPlaylistRepository) HasSong(ctx context.Context, playlistID, songID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM playlist_songs WHERE playlist_id = ? AND song_id = ?)`,
		playlistID, songID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// PlaylistSongs lists the member songs of a playlist.
func (r *MySQLPlaylistRepository) PlaylistSongs(ctx context.Context, playlistID string) ([]*model.SongSummary, error) {
	query := `
		SELECT s.id, s.title, s.performer
		FROM playlist_songs ps
		JOIN songs s ON ps.song_id = s.id
		WHERE ps.playlist_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

// PlaylistActivities lists the activity log ordered by time ascending.
func (r *MySQLPlaylistRepository) PlaylistActivities(ctx context.Context, playlistID string) ([]*model.ActivityEntry, error) {
	query := `
		SELECT u.username, s.title, a.action, a.time
		FROM playlist_activities a
		JOIN users u ON a.user_id = u.id
		JOIN songs s ON a.song_id = s.id
		WHERE a.playlist_id = ?
		ORDER BY a.time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*model.ActivityEntry{}
	for rows.Next() {
		entry := &model.ActivityEntry{}
		if err := rows.Scan(&entry.Username, &entry.Title, &entry.Action, &entry.Time); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func insertActivity(ctx context.Context, tx *sql.Tx, activity *model.PlaylistActivity) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO playlist_activities (id, playlist_id, song_id, user_id, action, time) VALUES (?, ?, ?, ?, ?, ?)`,
		activity.ID,
		activity.PlaylistID,
		activity.SongID,
		activity.UserID,
		activity.Action,
		activity.Time,
	)
	return err
}
