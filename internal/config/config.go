package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Presets *Presets `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	DatabaseUrl      string        `env:"DATABASE_URL"`
	IDHeader         string        `env:"ID_HEADER" optional:"true"`
	RecipeAPIKey     string        `env:"RECIPE_API_KEY"`
	RecipeAPIHost    string        `env:"RECIPE_API_HOST" envDefault:"recipe-by-api-ninjas.p.rapidapi.com"`
	RecipeAPIBaseURL string        `env:"RECIPE_API_BASE_URL" envDefault:"https://recipe-by-api-ninjas.p.rapidapi.com"`
	PexelsAPIKey     string        `env:"PEXELS_API_KEY"`
	PexelsBaseURL    string        `env:"PEXELS_BASE_URL" envDefault:"https://api.pexels.com"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	MaxImageLookups  int           `env:"MAX_IMAGE_LOOKUPS" envDefault:"0" optional:"true"`
	RateLimitRPS     int           `env:"RATE_LIMIT_RPS" envDefault:"10"`
	PresetsPath      string        `env:"PRESETS_PATH" envDefault:"configs/presets.yaml"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
