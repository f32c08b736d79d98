package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/repository"
	"github.com/yummiapp/yummi-api/internal/state"
	"github.com/yummiapp/yummi-api/internal/testutil"
)

// storeWithBatch returns a store holding the given recipes as its current batch.
func storeWithBatch(recipes ...models.Recipe) *state.Store {
	store := state.NewStore()
	_, gen := store.Begin(context.Background())
	store.Commit(gen, models.NewSuccess(recipes), "")
	return store
}

func pasta() models.Recipe {
	return models.Recipe{ID: "r1", Title: "Emerald Pea Pasta", Servings: "4", ImageURL: testutil.TestImageURL}
}

func TestToggleFavorite_AddsAndUpdatesBatch(t *testing.T) {
	repo := testutil.NewMockFavoriteRepo()
	store := storeWithBatch(pasta())
	svc := NewFavoriteService(repo, store)

	got, err := svc.ToggleFavorite("r1")
	if err != nil {
		t.Fatalf("ToggleFavorite error: %v", err)
	}
	if !got.IsFavorited {
		t.Error("recipe should be favorited after first toggle")
	}
	if _, ok := repo.Favorites["r1"]; !ok {
		t.Error("favorite should be persisted")
	}
	inBatch, _ := store.FindByID("r1")
	if !inBatch.IsFavorited {
		t.Error("batch copy should be favorited")
	}
}

func TestToggleFavorite_TwiceRestores(t *testing.T) {
	repo := testutil.NewMockFavoriteRepo()
	store := storeWithBatch(pasta())
	svc := NewFavoriteService(repo, store)

	if _, err := svc.ToggleFavorite("r1"); err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	got, err := svc.ToggleFavorite("r1")
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if got.IsFavorited {
		t.Error("recipe should not be favorited after second toggle")
	}
	if len(repo.Favorites) != 0 {
		t.Errorf("favorites = %d, want 0", len(repo.Favorites))
	}
	inBatch, _ := store.FindByID("r1")
	if inBatch != pasta() {
		t.Errorf("batch copy = %+v, want original", inBatch)
	}
}

func TestToggleFavorite_FromSavedFavoriteAfterBatchReplaced(t *testing.T) {
	repo := testutil.NewMockFavoriteRepo()
	repo.CreateFavorite(models.NewFavorite(pasta()))
	svc := NewFavoriteService(repo, storeWithBatch(models.Recipe{ID: "other"}))

	got, err := svc.ToggleFavorite("r1")
	if err != nil {
		t.Fatalf("ToggleFavorite error: %v", err)
	}
	if got.IsFavorited {
		t.Error("toggling a saved favorite should unfavorite it")
	}
	if len(repo.Favorites) != 0 {
		t.Error("favorite should be removed")
	}
}

func TestToggleFavorite_UnknownID(t *testing.T) {
	svc := NewFavoriteService(testutil.NewMockFavoriteRepo(), state.NewStore())

	_, err := svc.ToggleFavorite("nope")
	var notFound repository.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestToggleFavorite_PersistFailureLeavesBatch(t *testing.T) {
	repo := testutil.NewMockFavoriteRepo()
	repo.CreateErr = errors.New("disk full")
	store := storeWithBatch(pasta())
	svc := NewFavoriteService(repo, store)

	if _, err := svc.ToggleFavorite("r1"); err == nil {
		t.Fatal("expected error")
	}
	inBatch, _ := store.FindByID("r1")
	if inBatch.IsFavorited {
		t.Error("batch copy must not change when persistence fails")
	}
}

func TestListFavorites(t *testing.T) {
	repo := testutil.NewMockFavoriteRepo()
	svc := NewFavoriteService(repo, storeWithBatch(pasta(), models.Recipe{ID: "r2", Title: "Tofu Bowl"}))

	svc.ToggleFavorite("r1")
	svc.ToggleFavorite("r2")

	favorites, err := svc.ListFavorites()
	if err != nil {
		t.Fatalf("ListFavorites error: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("favorites = %d, want 2", len(favorites))
	}
	if favorites[0].ID != "r1" || favorites[1].ID != "r2" {
		t.Errorf("order = %s, %s", favorites[0].ID, favorites[1].ID)
	}
	for _, f := range favorites {
		if !f.IsFavorited {
			t.Errorf("favorite %s should have IsFavorited", f.ID)
		}
	}
}
