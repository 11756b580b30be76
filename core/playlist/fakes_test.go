package playlist

import (
	"context"
	"sort"

	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/go-sql-driver/mysql"
)

// duplicateEntry mimics the store rejecting a unique-key violation.
func duplicateEntry() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

// memStore is a stateful in-memory stand-in for the catalog store,
// shared by the fake repositories below.
type memStore struct {
	playlists  map[string]*model.Playlist
	collabs    map[string]string // playlistID+"/"+userID -> collaboration id
	edges      map[string]string // playlistID+"/"+songID -> edge id
	activities []*model.PlaylistActivity
	songs      map[string]*model.Song
	users      map[string]*model.User
}

func newMemStore() *memStore {
	return &memStore{
		playlists: map[string]*model.Playlist{},
		collabs:   map[string]string{},
		edges:     map[string]string{},
		songs:     map[string]*model.Song{},
		users:     map[string]*model.User{},
	}
}

func (m *memStore) addUser(id, username string) {
	m.users[id] = &model.User{ID: id, Username: username}
}

func (m *memStore) addSong(id, title, performer string) {
	m.songs[id] = &model.Song{ID: id, Title: title, Performer: performer}
}

// memPlaylistRepo implements repository.PlaylistRepository over memStore.
type memPlaylistRepo struct {
	store *memStore
}

var _ repository.PlaylistRepository = (*memPlaylistRepo)(nil)

func (r *memPlaylistRepo) CreatePlaylist(ctx context.Context, p *model.Playlist) error {
	r.store.playlists[p.ID] = p
	return nil
}

func (r *memPlaylistRepo) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	return r.store.playlists[id], nil
}

func (r *memPlaylistRepo) GetPlaylistDetail(ctx context.Context, id string) (*model.PlaylistSummary, error) {
	p := r.store.playlists[id]
	if p == nil {
		return nil, nil
	}
	username := ""
	if u := r.store.users[p.OwnerID]; u != nil {
		username = u.Username
	}
	return &model.PlaylistSummary{ID: p.ID, Name: p.Name, Username: username}, nil
}

func (r *memPlaylistRepo) ListPlaylistsForUser(ctx context.Context, userID string) ([]*model.PlaylistSummary, error) {
	seen := map[string]bool{}
	out := []*model.PlaylistSummary{}
	for _, p := range r.store.playlists {
		if p.OwnerID == userID || r.store.collabs[p.ID+"/"+userID] != "" {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			summary, _ := r.GetPlaylistDetail(ctx, p.ID)
			out = append(out, summary)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPlaylistRepo) DeletePlaylist(ctx context.Context, id string) error {
	delete(r.store.playlists, id)
	for key := range r.store.edges {
		if keyPlaylist(key) == id {
			delete(r.store.edges, key)
		}
	}
	for key := range r.store.collabs {
		if keyPlaylist(key) == id {
			delete(r.store.collabs, key)
		}
	}
	kept := r.store.activities[:0]
	for _, a := range r.store.activities {
		if a.PlaylistID != id {
			kept = append(kept, a)
		}
	}
	r.store.activities = kept
	return nil
}

func (r *memPlaylistRepo) AddSong(ctx context.Context, edge *model.PlaylistSong, activity *model.PlaylistActivity) error {
	key := edge.PlaylistID + "/" + edge.SongID
	if r.store.edges[key] != "" {
		return duplicateEntry()
	}
	r.store.edges[key] = edge.ID
	r.store.activities = append(r.store.activities, activity)
	return nil
}

func (r *memPlaylistRepo) RemoveSong(ctx context.Context, playlistID, songID string, activity *model.PlaylistActivity) (bool, error) {
	key := playlistID + "/" + songID
	if r.store.edges[key] == "" {
		return false, nil
	}
	delete(r.store.edges, key)
	r.store.activities = append(r.store.activities, activity)
	return true, nil
}

func (r *memPlaylistRepo) HasSong(ctx context.Context, playlistID, songID string) (bool, error) {
	return r.store.edges[playlistID+"/"+songID] != "", nil
}

func (r *memPlaylistRepo) PlaylistSongs(ctx context.Context, playlistID string) ([]*model.SongSummary, error) {
	out := []*model.SongSummary{}
	for key := range r.store.edges {
		if keyPlaylist(key) != playlistID {
			continue
		}
		if s := r.store.songs[keyRest(key)]; s != nil {
			out = append(out, &model.SongSummary{ID: s.ID, Title: s.Title, Performer: s.Performer})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPlaylistRepo) PlaylistActivities(ctx context.Context, playlistID string) ([]*model.ActivityEntry, error) {
	out := []*model.ActivityEntry{}
	for _, a := range r.store.activities {
		if a.PlaylistID != playlistID {
			continue
		}
		entry := &model.ActivityEntry{Action: a.Action, Time: a.Time}
		if u := r.store.users[a.UserID]; u != nil {
			entry.Username = u.Username
		}
		if s := r.store.songs[a.SongID]; s != nil {
			entry.Title = s.Title
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// memCollabRepo implements repository.CollaborationRepository over memStore.
type memCollabRepo struct {
	store *memStore
}

var _ repository.CollaborationRepository = (*memCollabRepo)(nil)

func (r *memCollabRepo) CreateCollaboration(ctx context.Context, c *model.Collaboration) error {
	key := c.PlaylistID + "/" + c.UserID
	if r.store.collabs[key] != "" {
		return duplicateEntry()
	}
	r.store.collabs[key] = c.ID
	return nil
}

func (r *memCollabRepo) DeleteCollaboration(ctx context.Context, playlistID, userID string) (bool, error) {
	key := playlistID + "/" + userID
	if r.store.collabs[key] == "" {
		return false, nil
	}
	delete(r.store.collabs, key)
	return true, nil
}

func (r *memCollabRepo) CollaborationExists(ctx context.Context, playlistID, userID string) (bool, error) {
	return r.store.collabs[playlistID+"/"+userID] != "", nil
}

// memSongRepo implements the song lookup the service needs; the
// embedded interface panics on anything else.
type memSongRepo struct {
	repository.SongRepository
	store *memStore
}

func (r *memSongRepo) GetSongByID(ctx context.Context, id string) (*model.Song, error) {
	return r.store.songs[id], nil
}

// memUserRepo implements the user lookup the service needs.
type memUserRepo struct {
	repository.UserRepository
	store *memStore
}

func (r *memUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.store.users[id], nil
}

func keyPlaylist(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[:i]
		}
	}
	return key
}

func keyRest(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[i+1:]
		}
	}
	return ""
}
