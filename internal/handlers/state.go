package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/state"
)

// StateHandler exposes the search state to polling clients.
type StateHandler struct {
	Store *state.Store
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(store *state.Store) *StateHandler {
	return &StateHandler{Store: store}
}

// GetState returns the current snapshot.
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.Store.Snapshot()})
}

// ConsumeNavigation reads and clears the pending navigation signal.
func (h *StateHandler) ConsumeNavigation(c *gin.Context) {
	target, ok := h.Store.ConsumeNavigation()
	c.JSON(http.StatusOK, gin.H{
		"pending": ok,
		"target":  target,
	})
}
