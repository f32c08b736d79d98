package repository

import (
	"errors"

	"github.com/yummiapp/yummi-api/internal/models"
	"gorm.io/gorm"
)

// ShoppingRepository is a repository for interacting with shopping-list items.
type ShoppingRepository struct {
	DB *gorm.DB
}

// NewShoppingRepository creates a new ShoppingRepository.
func NewShoppingRepository(db *gorm.DB) *ShoppingRepository {
	return &ShoppingRepository{DB: db}
}

// CreateItem inserts a new item.
func (r *ShoppingRepository) CreateItem(item *models.Ingredient) error {
	return r.DB.Create(item).Error
}

// GetItemByID retrieves an item by its ID.
func (r *ShoppingRepository) GetItemByID(itemID uint) (*models.Ingredient, error) {
	var item models.Ingredient
	if err := r.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "Shopping item not found"}
		}
		return nil, err
	}
	return &item, nil
}

// SetItemChecked updates the checked flag of an item and returns it.
func (r *ShoppingRepository) SetItemChecked(itemID uint, checked bool) (*models.Ingredient, error) {
	item, err := r.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if err := r.DB.Model(item).Update("is_checked", checked).Error; err != nil {
		return nil, err
	}
	item.IsChecked = checked
	return item, nil
}

// ListItems returns items in insertion order, optionally skipping checked ones.
func (r *ShoppingRepository) ListItems(includeChecked bool) ([]models.Ingredient, error) {
	var items []models.Ingredient
	query := r.DB.Order("id ASC")
	if !includeChecked {
		query = query.Where("is_checked = ?", false)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteCheckedItems removes every checked item.
func (r *ShoppingRepository) DeleteCheckedItems() (int64, error) {
	result := r.DB.Where("is_checked = ?", true).Delete(&models.Ingredient{})
	return result.RowsAffected, result.Error
}
