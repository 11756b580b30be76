package model

import "time"

// Song represents a song in the catalog. AlbumID is optional; a song
// may exist without belonging to an album.
type Song struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Year      int       `json:"year" gorm:"not null"`
	Genre     string    `json:"genre" gorm:"size:50;not null"`
	Performer string    `json:"performer" gorm:"size:255;not null;index"`
	Duration  *int      `json:"duration"`
	AlbumID   *string   `json:"albumId" gorm:"size:50;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SongSummary is the short form used in album and playlist listings.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}
