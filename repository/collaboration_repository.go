package repository

import (
	"context"
	"database/sql"

	"OpenMusic/model"
)

// CollaborationRepository defines collaboration persistence operations.
// The unique index on (playlist_id, user_id) rejects duplicate grants.
type CollaborationRepository interface {
	// CreateCollaboration inserts a collaboration grant. A duplicate
	// (playlist, user) pair surfaces as a unique-constraint error.
	CreateCollaboration(ctx context.Context, collab *model.Collaboration) error

	// DeleteCollaboration removes a grant. Returns false if no row matched.
	DeleteCollaboration(ctx context.Context, playlistID, userID string) (bool, error)

	// CollaborationExists reports whether the user holds a grant for
	// the playlist.
	CollaborationExists(ctx context.Context, playlistID, userID string) (bool, error)
}

// MySQLCollaborationRepository is the MySQL implementation of CollaborationRepository.
type MySQLCollaborationRepository struct {
	db *sql.DB
}

// NewMySQLCollaborationRepository creates a new MySQL collaboration repository.
func NewMySQLCollaborationRepository(db *sql.DB) *MySQLCollaborationRepository {
	return &MySQLCollaborationRepository{db: db}
}

// CreateCollaboration inserts a collaboration grant.
func (r *MySQLCollaborationRepository) CreateCollaboration(ctx context.Context, collab *model.Collaboration) error {
	query := `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, collab.ID, collab.PlaylistID, collab.UserID)
	return err
}

// DeleteCollaboration removes a grant.
func (r *MySQLCollaborationRepository) DeleteCollaboration(ctx context.Context, playlistID, userID string) (bool, error) {
	query := `DELETE FROM collaborations WHERE playlist_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, playlistID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CollaborationExists reports whether the user holds a grant for the playlist.
func (r *MySQLCollaborationRepository) CollaborationExists(ctx context.Context, playlistID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM collaborations WHERE playlist_id = ? AND user_id = ?)`,
		playlistID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
