package playlist

import (
	"context"
	"testing"

	"OpenMusic/apperr"
	"OpenMusic/core/access"
)

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	playlists := &memPlaylistRepo{store: store}
	collabs := &memCollabRepo{store: store}
	songs := &memSongRepo{store: store}
	users := &memUserRepo{store: store}
	evaluator := access.NewEvaluator(playlists, collabs)
	return NewService(evaluator, playlists, collabs, songs, users), store
}

func TestCreateAndDeletePlaylist(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")

	id, err := svc.Create(ctx, "Road Trip", "user-a")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if store.playlists[id] == nil {
		t.Fatal("playlist not persisted")
	}

	// Only the owner may delete.
	err = svc.Delete(ctx, id, "user-b")
	if !apperr.IsAuthorization(err) {
		t.Errorf("Delete by non-owner error = %v, want authorization", err)
	}

	if err := svc.Delete(ctx, id, "user-a"); err != nil {
		t.Fatalf("Delete by owner returned error: %v", err)
	}
	if store.playlists[id] != nil {
		t.Error("playlist still present after delete")
	}
}

func TestAddSong_DuplicateConflicts(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addSong("song-1", "Highway", "The Drivers")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")

	if err := svc.AddSong(ctx, id, "song-1", "user-a"); err != nil {
		t.Fatalf("first AddSong returned error: %v", err)
	}

	err := svc.AddSong(ctx, id, "song-1", "user-a")
	if !apperr.IsInvariant(err) {
		t.Errorf("second AddSong error = %v, want invariant", err)
	}

	// Membership set is unchanged by the failed add.
	detail, err := svc.Songs(ctx, id, "user-a")
	if err != nil {
		t.Fatalf("Songs returned error: %v", err)
	}
	if len(detail.Songs) != 1 {
		t.Errorf("membership size = %d, want 1", len(detail.Songs))
	}
}

func TestAddSong_UnknownSongIsNotFound(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")

	err := svc.AddSong(ctx, id, "song-missing", "user-a")
	if !apperr.IsNotFound(err) {
		t.Errorf("AddSong(unknown song) error = %v, want not-found", err)
	}
}

func TestRemoveSong_MissingEdgeIsNotFound(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addSong("song-1", "Highway", "The Drivers")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")

	err := svc.RemoveSong(ctx, id, "song-1", "user-a")
	if !apperr.IsNotFound(err) {
		t.Errorf("RemoveSong(no edge) error = %v, want not-found", err)
	}
}

func TestDeleteCascade(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addSong("song-1", "Highway", "The Drivers")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")
	if err := svc.AddSong(ctx, id, "song-1", "user-a"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}

	if err := svc.Delete(ctx, id, "user-a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	// After the cascade both reads fail not-found, for anyone.
	if _, err := svc.Songs(ctx, id, "user-a"); !apperr.IsNotFound(err) {
		t.Errorf("Songs after delete error = %v, want not-found", err)
	}
	if _, err := svc.Activities(ctx, id, "user-a"); !apperr.IsNotFound(err) {
		t.Errorf("Activities after delete error = %v, want not-found", err)
	}
}

func TestAddCollaborator_OwnerRejected(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")

	_, err := svc.AddCollaborator(ctx, id, "user-a", "user-a")
	if !apperr.IsInvariant(err) {
		t.Errorf("AddCollaborator(owner) error = %v, want invariant", err)
	}
}

func TestAddCollaborator_DuplicateConflicts(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addUser("user-b", "bob")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")

	if _, err := svc.AddCollaborator(ctx, id, "user-b", "user-a"); err != nil {
		t.Fatalf("AddCollaborator returned error: %v", err)
	}
	_, err := svc.AddCollaborator(ctx, id, "user-b", "user-a")
	if !apperr.IsInvariant(err) {
		t.Errorf("duplicate AddCollaborator error = %v, want invariant", err)
	}
}

func TestAddCollaborator_OnlyOwnerMayGrant(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addUser("user-b", "bob")
	store.addUser("user-c", "carol")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")
	if _, err := svc.AddCollaborator(ctx, id, "user-b", "user-a"); err != nil {
		t.Fatalf("AddCollaborator returned error: %v", err)
	}

	// A collaborator cannot manage collaborations.
	_, err := svc.AddCollaborator(ctx, id, "user-c", "user-b")
	if !apperr.IsAuthorization(err) {
		t.Errorf("AddCollaborator by collaborator error = %v, want authorization", err)
	}
}

func TestRemoveCollaborator_MissingIsNotFound(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addUser("user-b", "bob")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")

	err := svc.RemoveCollaborator(ctx, id, "user-b", "user-a")
	if !apperr.IsNotFound(err) {
		t.Errorf("RemoveCollaborator(no grant) error = %v, want not-found", err)
	}
}

func TestListForUser_OwnedAndCollaborated(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addUser("user-b", "bob")

	owned, _ := svc.Create(ctx, "Mine", "user-b")
	shared, _ := svc.Create(ctx, "Ours", "user-a")
	if _, err := svc.AddCollaborator(ctx, shared, "user-b", "user-a"); err != nil {
		t.Fatalf("AddCollaborator returned error: %v", err)
	}
	svc.Create(ctx, "Not Mine", "user-a")

	playlists, err := svc.ListForUser(ctx, "user-b")
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("ListForUser returned %d playlists, want 2", len(playlists))
	}
	got := map[string]bool{}
	for _, p := range playlists {
		got[p.ID] = true
	}
	if !got[owned] || !got[shared] {
		t.Errorf("ListForUser = %v, want {%s, %s}", got, owned, shared)
	}
}

// TestCollaborationScenario walks the full collaboration flow: the
// outsider is rejected, gains access through a grant, and the activity
// log ends up ordered [owner add, collaborator add].
func TestCollaborationScenario(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addUser("user-b", "bob")
	store.addSong("song-1", "Highway", "The Drivers")
	store.addSong("song-2", "Detour", "The Drivers")

	id, err := svc.Create(ctx, "Road Trip", "user-a")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.AddSong(ctx, id, "song-1", "user-a"); err != nil {
		t.Fatalf("owner AddSong returned error: %v", err)
	}

	err = svc.AddSong(ctx, id, "song-2", "user-b")
	if !apperr.IsAuthorization(err) {
		t.Fatalf("non-collaborator AddSong error = %v, want authorization", err)
	}

	if _, err := svc.AddCollaborator(ctx, id, "user-b", "user-a"); err != nil {
		t.Fatalf("AddCollaborator returned error: %v", err)
	}

	if err := svc.AddSong(ctx, id, "song-2", "user-b"); err != nil {
		t.Fatalf("collaborator AddSong returned error: %v", err)
	}

	activities, err := svc.Activities(ctx, id, "user-b")
	if err != nil {
		t.Fatalf("Activities returned error: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("got %d activities, want 2", len(activities))
	}

	want := []struct{ username, title, action string }{
		{"alice", "Highway", "add"},
		{"bob", "Detour", "add"},
	}
	for i, w := range want {
		got := activities[i]
		if got.Username != w.username || got.Title != w.title || got.Action != w.action {
			t.Errorf("activity[%d] = {%s %s %s}, want {%s %s %s}",
				i, got.Username, got.Title, got.Action, w.username, w.title, w.action)
		}
	}
}

func TestRemoveSongRecordsActivity(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	store.addUser("user-a", "alice")
	store.addSong("song-1", "Highway", "The Drivers")

	id, _ := svc.Create(ctx, "Road Trip", "user-a")
	if err := svc.AddSong(ctx, id, "song-1", "user-a"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}
	if err := svc.RemoveSong(ctx, id, "song-1", "user-a"); err != nil {
		t.Fatalf("RemoveSong returned error: %v", err)
	}

	activities, err := svc.Activities(ctx, id, "user-a")
	if err != nil {
		t.Fatalf("Activities returned error: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("got %d activities, want 2", len(activities))
	}
	if activities[0].Action != "add" || activities[1].Action != "delete" {
		t.Errorf("activity actions = [%s %s], want [add delete]",
			activities[0].Action, activities[1].Action)
	}
}
