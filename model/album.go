package model

import "time"

// Album represents an album in the catalog.
type Album struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Year      int       `json:"year" gorm:"not null"`
	CoverURL  *string   `json:"coverUrl" gorm:"size:512"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AlbumLike records that a user likes an album. A user may like an
// album at most once; the unique index backs that invariant.
type AlbumLike struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	AlbumID   string    `json:"albumId" gorm:"size:50;not null;uniqueIndex:uq_album_likes_album_user"`
	UserID    string    `json:"userId" gorm:"size:50;not null;uniqueIndex:uq_album_likes_album_user"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlbumDetail is the reporting view of an album together with its songs.
type AlbumDetail struct {
	Album
	Songs []*SongSummary `json:"songs"`
}
