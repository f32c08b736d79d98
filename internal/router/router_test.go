package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yummiapp/yummi-api/internal/config"
	"github.com/yummiapp/yummi-api/internal/db"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/middleware"
	"github.com/yummiapp/yummi-api/internal/state"
	"github.com/yummiapp/yummi-api/internal/testutil"
	"github.com/yummiapp/yummi-api/internal/ws"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, recipeAPI, pexels *httptest.Server, idHeader string) *gin.Engine {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(database))

	cfg := &config.Config{
		EnvVars: config.EnvVars{
			IDHeader:         idHeader,
			RecipeAPIKey:     "recipe-key",
			RecipeAPIHost:    "recipes.test",
			RecipeAPIBaseURL: recipeAPI.URL,
			PexelsAPIKey:     "pexels-key",
			PexelsBaseURL:    pexels.URL,
			RateLimitRPS:     100,
		},
		Presets: config.DefaultPresets(),
	}

	hub := ws.NewHub()
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		hub.Stop()
		sqlDB.Close()
	})

	return SetupRouter(ctx, cfg, Deps{
		DB:         database,
		HTTPClient: recipeAPI.Client(),
		Hub:        hub,
		Store:      state.NewStore(),
	})
}

func upstreams(t *testing.T) (*httptest.Server, *httptest.Server) {
	t.Helper()
	recipeAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Emerald Pea Pasta","ingredients":"peas","servings":"4","instructions":"cook"}]`))
	}))
	pexels := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos":[{"src":{"medium":"` + testutil.TestImageURL + `"}}]}`))
	}))
	t.Cleanup(func() {
		recipeAPI.Close()
		pexels.Close()
	})
	return recipeAPI, pexels
}

func TestPing(t *testing.T) {
	recipeAPI, pexels := upstreams(t)
	r := newTestRouter(t, recipeAPI, pexels, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
}

func TestSearchEndToEnd(t *testing.T) {
	recipeAPI, pexels := upstreams(t)
	r := newTestRouter(t, recipeAPI, pexels, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/recipes/search?query=pasta", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Result struct {
			Kind    string `json:"kind"`
			Recipes []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				ImageURL string `json:"image_url"`
			} `json:"recipes"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Result.Kind)
	require.Len(t, body.Result.Recipes, 1)
	assert.Equal(t, "Emerald Pea Pasta", body.Result.Recipes[0].Title)
	assert.Equal(t, testutil.TestImageURL, body.Result.Recipes[0].ImageURL)
	assert.NotEmpty(t, body.Result.Recipes[0].ID)

	// Favorite the recipe and read it back from the database.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/recipes/"+body.Result.Recipes[0].ID+"/favorite", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/favorites", nil))
	assert.Contains(t, w.Body.String(), "Emerald Pea Pasta")
}

func TestIDHeaderRequired(t *testing.T) {
	recipeAPI, pexels := upstreams(t)
	r := newTestRouter(t, recipeAPI, pexels, "client-id")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/state", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
	req.Header.Set(middleware.IDHeader, "client-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Liveness stays open.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
