package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Presets lists the choices offered by the search-by-preference screen.
type Presets struct {
	Ingredients []string `yaml:"ingredients" json:"ingredients"`
	Servings    []string `yaml:"servings" json:"servings"`
}

// DefaultPresets returns the built-in preference choices, used when no
// presets file is present.
func DefaultPresets() *Presets {
	return &Presets{
		Ingredients: []string{"Chicken", "Fish", "Tofu", "Pork", "Seafood", "Fruits", "Beef", "Vegetable", "Egg"},
		Servings:    []string{"1", "2", "3", "4", "5", "6+"},
	}
}

// LoadPresets reads presets from a YAML file. A missing file falls back to
// DefaultPresets.
func LoadPresets(path string) (*Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPresets(), nil
		}
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets YAML: %w", err)
	}
	if len(presets.Ingredients) == 0 || len(presets.Servings) == 0 {
		return nil, fmt.Errorf("presets file %s must list ingredients and servings", path)
	}
	return &presets, nil
}

// HasServing reports whether s is one of the configured serving choices.
func (p *Presets) HasServing(s string) bool {
	for _, v := range p.Servings {
		if v == s {
			return true
		}
	}
	return false
}

// HasIngredient reports whether name matches a configured ingredient,
// ignoring case.
func (p *Presets) HasIngredient(name string) bool {
	for _, v := range p.Ingredients {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
