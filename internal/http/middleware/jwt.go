package middleware

import (
	"net/http"
	"strings"

	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT validates the Authorization bearer token and stores the account id
// in the gin context under "account_id".
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		accountID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("account_id", accountID)
		c.Next()
	}
}
