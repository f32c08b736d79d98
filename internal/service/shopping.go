package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	goaway "github.com/TwiN/go-away"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/repository"
	"go.uber.org/zap"
)

const maxIngredientNameLength = 100

// ShoppingService manages the shopping list.
type ShoppingService struct {
	Repo      repository.ShoppingRepo
	profanity *goaway.ProfanityDetector
}

// NewShoppingService creates a new ShoppingService.
func NewShoppingService(repo repository.ShoppingRepo) *ShoppingService {
	return &ShoppingService{
		Repo:      repo,
		profanity: goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false),
	}
}

// AddItem appends an unchecked item to the list.
func (s *ShoppingService) AddItem(name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if err := s.validateName(name); err != nil {
		return nil, err
	}

	item := &models.Ingredient{Name: name}
	if err := s.Repo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	logger.Get().Debug("shopping item added", zap.Uint("item_id", item.ID), zap.String("name", name))
	return item, nil
}

// CheckItem marks an item as bought.
func (s *ShoppingService) CheckItem(itemID uint) (*models.Ingredient, error) {
	return s.Repo.SetItemChecked(itemID, true)
}

// ListItems returns the list in insertion order. Checked items are only
// included when includeChecked is true.
func (s *ShoppingService) ListItems(includeChecked bool) ([]models.Ingredient, error) {
	return s.Repo.ListItems(includeChecked)
}

// ClearChecked removes all checked items and reports how many were removed.
func (s *ShoppingService) ClearChecked() (int64, error) {
	return s.Repo.DeleteCheckedItems()
}

func (s *ShoppingService) validateName(name string) error {
	if name == "" {
		return &ValidationError{message: "item name cannot be blank"}
	}
	if utf8.RuneCountInString(name) > maxIngredientNameLength {
		return &ValidationError{message: fmt.Sprintf("item name must be at most %d characters", maxIngredientNameLength)}
	}
	if s.profanity.IsProfane(name) {
		return &ValidationError{message: "item name contains inappropriate language"}
	}
	return nil
}
