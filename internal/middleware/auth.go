package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-fee-simulator/internal/service"
)

const ContextUserKey = "user"

type TokenVerifier interface {
	Verify(token string) (*service.StaffClaims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			_ = c.Error(service.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims.Username)
		c.Next()
	}
}
