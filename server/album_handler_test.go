package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"OpenMusic/core/album"
	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/gorilla/mux"
)

type stubAlbums struct {
	repository.AlbumRepository
	albums map[string]*model.Album
}

func (s *stubAlbums) GetAlbumByID(ctx context.Context, id string) (*model.Album, error) {
	return s.albums[id], nil
}

type stubLikes struct {
	repository.AlbumLikeRepository
	count int64
}

func (s *stubLikes) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	return s.count, nil
}

type mapCache struct {
	entries map[string]int64
}

func (c *mapCache) Get(ctx context.Context, albumID string) (int64, bool, error) {
	v, ok := c.entries[albumID]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, albumID string, count int64) error {
	c.entries[albumID] = count
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, albumID string) error {
	delete(c.entries, albumID)
	return nil
}

func TestGetAlbumLikesHandler_DataSourceHeader(t *testing.T) {
	albums := &stubAlbums{albums: map[string]*model.Album{
		"album-1": {ID: "album-1", Name: "Debut", Year: 2001},
	}}
	svc := album.NewService(albums, nil, &stubLikes{count: 3}, &mapCache{entries: map[string]int64{}})
	h := &APIHandler{albums: svc}

	router := mux.NewRouter()
	router.HandleFunc("/api/albums/{id}/likes", h.GetAlbumLikesHandler).Methods(http.MethodGet)

	get := func() (*httptest.ResponseRecorder, int64) {
		req := httptest.NewRequest(http.MethodGet, "/api/albums/album-1/likes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var body struct {
			Data struct {
				Likes int64 `json:"likes"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		return w, body.Data.Likes
	}

	// First read computes from the store, second one hits the cache.
	w, likes := get()
	if w.Code != http.StatusOK || likes != 3 {
		t.Fatalf("first read = (%d, %d likes), want (200, 3)", w.Code, likes)
	}
	if got := w.Header().Get("X-Data-Source"); got != "database" {
		t.Errorf("first X-Data-Source = %q, want database", got)
	}

	w, likes = get()
	if likes != 3 {
		t.Fatalf("second read likes = %d, want 3", likes)
	}
	if got := w.Header().Get("X-Data-Source"); got != "cache" {
		t.Errorf("second X-Data-Source = %q, want cache", got)
	}
}

func TestGetAlbumLikesHandler_UnknownAlbum(t *testing.T) {
	svc := album.NewService(&stubAlbums{albums: map[string]*model.Album{}}, nil, &stubLikes{}, &mapCache{entries: map[string]int64{}})
	h := &APIHandler{albums: svc}

	router := mux.NewRouter()
	router.HandleFunc("/api/albums/{id}/likes", h.GetAlbumLikesHandler).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/albums/album-x/likes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
