package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/repository"
)

// --- MockRecipeProvider ---

// MockRecipeProvider is a mock implementation of provider.RecipeProvider.
type MockRecipeProvider struct {
	SearchRecipesFunc func(ctx context.Context, query string) ([]byte, error)

	mu      sync.Mutex
	Queries []string
}

func (m *MockRecipeProvider) SearchRecipes(ctx context.Context, query string) ([]byte, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.SearchRecipesFunc != nil {
		return m.SearchRecipesFunc(ctx, query)
	}
	return nil, fmt.Errorf("SearchRecipes not configured")
}

// --- MockImageProvider ---

// MockImageProvider is a mock implementation of provider.ImageProvider.
type MockImageProvider struct {
	FetchImageFunc func(ctx context.Context, title string) (string, bool)
}

func (m *MockImageProvider) FetchImage(ctx context.Context, title string) (string, bool) {
	if m.FetchImageFunc != nil {
		return m.FetchImageFunc(ctx, title)
	}
	return "", false
}

// --- MockFavoriteRepo ---

// MockFavoriteRepo is an in-memory implementation of repository.FavoriteRepo.
type MockFavoriteRepo struct {
	mu        sync.Mutex
	Favorites map[string]*models.Favorite
	nextID    uint
	CreateErr error
}

// NewMockFavoriteRepo returns an empty MockFavoriteRepo.
func NewMockFavoriteRepo() *MockFavoriteRepo {
	return &MockFavoriteRepo{Favorites: make(map[string]*models.Favorite), nextID: 1}
}

func (m *MockFavoriteRepo) CreateFavorite(favorite *models.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, exists := m.Favorites[favorite.RecipeID]; exists {
		return nil
	}
	favorite.ID = m.nextID
	m.nextID++
	m.Favorites[favorite.RecipeID] = favorite
	return nil
}

func (m *MockFavoriteRepo) GetFavoriteByRecipeID(recipeID string) (*models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.Favorites[recipeID]; ok {
		return f, nil
	}
	return nil, repository.NotFoundError{}
}

func (m *MockFavoriteRepo) DeleteFavoriteByRecipeID(recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Favorites, recipeID)
	return nil
}

func (m *MockFavoriteRepo) ListFavorites() ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Favorite, 0, len(m.Favorites))
	for _, f := range m.Favorites {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- MockShoppingRepo ---

// MockShoppingRepo is an in-memory implementation of repository.ShoppingRepo.
type MockShoppingRepo struct {
	mu     sync.Mutex
	Items  []*models.Ingredient
	nextID uint
}

// NewMockShoppingRepo returns an empty MockShoppingRepo.
func NewMockShoppingRepo() *MockShoppingRepo {
	return &MockShoppingRepo{nextID: 1}
}

func (m *MockShoppingRepo) CreateItem(item *models.Ingredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID
	m.nextID++
	m.Items = append(m.Items, item)
	return nil
}

func (m *MockShoppingRepo) GetItemByID(itemID uint) (*models.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.Items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, repository.NotFoundError{}
}

func (m *MockShoppingRepo) SetItemChecked(itemID uint, checked bool) (*models.Ingredient, error) {
	item, err := m.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	item.IsChecked = checked
	m.mu.Unlock()
	return item, nil
}

func (m *MockShoppingRepo) ListItems(includeChecked bool) ([]models.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Ingredient, 0, len(m.Items))
	for _, item := range m.Items {
		if includeChecked || !item.IsChecked {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *MockShoppingRepo) DeleteCheckedItems() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Items[:0]
	var removed int64
	for _, item := range m.Items {
		if item.IsChecked {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	m.Items = kept
	return removed, nil
}
