package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RECIPE_API_KEY", "recipe-key")
	t.Setenv("PEXELS_API_KEY", "pexels-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.EnvVars.Port)
	assert.Equal(t, "recipe-key", cfg.EnvVars.RecipeAPIKey)
	assert.Equal(t, "recipe-by-api-ninjas.p.rapidapi.com", cfg.EnvVars.RecipeAPIHost)
	assert.Equal(t, "https://api.pexels.com", cfg.EnvVars.PexelsBaseURL)
	assert.Equal(t, 10*time.Second, cfg.EnvVars.HTTPTimeout)
	assert.Equal(t, 0, cfg.EnvVars.MaxImageLookups)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("MAX_IMAGE_LOOKUPS", "4")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.EnvVars.HTTPTimeout)
	assert.Equal(t, 4, cfg.EnvVars.MaxImageLookups)
	assert.Equal(t, "9000", cfg.EnvVars.Port)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestCheckConfigEnvFields_MissingRequired(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{
		Port:             "8080",
		DatabaseUrl:      "postgres://localhost/yummi",
		RecipeAPIHost:    "host",
		RecipeAPIBaseURL: "https://example.com",
		PexelsAPIKey:     "key",
		PexelsBaseURL:    "https://example.com",
		HTTPTimeout:      time.Second,
		RateLimitRPS:     5,
		PresetsPath:      "configs/presets.yaml",
	}}

	err := cfg.CheckConfigEnvFields()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECIPE_API_KEY")
}

func TestCheckConfigEnvFields_OptionalSkipped(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{
		Port:             "8080",
		DatabaseUrl:      "postgres://localhost/yummi",
		RecipeAPIKey:     "key",
		RecipeAPIHost:    "host",
		RecipeAPIBaseURL: "https://example.com",
		PexelsAPIKey:     "key",
		PexelsBaseURL:    "https://example.com",
		HTTPTimeout:      time.Second,
		RateLimitRPS:     5,
		PresetsPath:      "configs/presets.yaml",
	}}

	assert.NoError(t, cfg.CheckConfigEnvFields())
}

func TestLoadPresets_MissingFileUsesDefaults(t *testing.T) {
	presets, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPresets(), presets)
}

func TestLoadPresets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := "ingredients:\n  - Lentils\nservings:\n  - \"2\"\n  - \"6+\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	presets, err := LoadPresets(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lentils"}, presets.Ingredients)
	assert.True(t, presets.HasServing("6+"))
	assert.False(t, presets.HasServing("6"))
	assert.True(t, presets.HasIngredient("lentils"))
}

func TestLoadPresets_EmptyListsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ingredients: []\n"), 0o600))

	_, err := LoadPresets(path)
	assert.Error(t, err)
}

func TestLoadPresets_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ingredients: [unterminated"), 0o600))

	_, err := LoadPresets(path)
	assert.Error(t, err)
}
