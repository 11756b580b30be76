package model

import "time"

// Playlist is owned by exactly one user. It is never mutated after
// creation except through its song membership and activity log.
type Playlist struct {
	ID      string `json:"id" gorm:"primaryKey;size:50"`
	Name    string `json:"name" gorm:"size:255;not null"`
	OwnerID string `json:"ownerId" gorm:"column:owner;size:50;not null;index"`
}

// Collaboration grants a non-owner user read/mutate access to a
// playlist. Unique per (playlist, user); the owner is never listed.
type Collaboration struct {
	ID         string `json:"id" gorm:"primaryKey;size:50"`
	PlaylistID string `json:"playlistId" gorm:"size:50;not null;uniqueIndex:uq_collaborations_playlist_user"`
	UserID     string `json:"userId" gorm:"size:50;not null;uniqueIndex:uq_collaborations_playlist_user"`
}

// PlaylistSong is the membership edge between a playlist and a song.
// No duplicate edges: unique per (playlist, song).
type PlaylistSong struct {
	ID         string `json:"id" gorm:"primaryKey;size:50"`
	PlaylistID string `json:"playlistId" gorm:"size:50;not null;uniqueIndex:uq_playlist_songs_playlist_song"`
	SongID     string `json:"songId" gorm:"size:50;not null;uniqueIndex:uq_playlist_songs_playlist_song"`
}

// Playlist activity actions.
const (
	ActivityAdd    = "add"
	ActivityDelete = "delete"
)

// PlaylistActivity is an append-only log entry recording a song being
// added to or removed from a playlist.
type PlaylistActivity struct {
	ID         string    `json:"id" gorm:"primaryKey;size:50"`
	PlaylistID string    `json:"playlistId" gorm:"size:50;not null;index"`
	SongID     string    `json:"songId" gorm:"size:50;not null"`
	UserID     string    `json:"userId" gorm:"size:50;not null"`
	Action     string    `json:"action" gorm:"size:10;not null"`
	Time       time.Time `json:"time" gorm:"column:time;not null"`
}

// PlaylistSummary is the listing form of a playlist, carrying the
// owner's username resolved via join.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PlaylistDetail is a playlist with its member songs.
type PlaylistDetail struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Songs    []*SongSummary `json:"songs"`
}

// ActivityEntry is the reporting view of one activity log row,
// resolved to usernames and song titles.
type ActivityEntry struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}
