package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IDHeader identifies first-party clients of the API.
const IDHeader = "X-Yummi-Identifier"

// CheckIDHeader rejects requests whose X-Yummi-Identifier header does not
// equal id. An empty id disables the check.
func CheckIDHeader(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id == "" {
			c.Next()
			return
		}
		if c.GetHeader(IDHeader) != id {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
