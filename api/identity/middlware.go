package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserClaims is the key used to store client claims in the Gin context.
	ContextUserClaims = "userClaims"
)

// Authoriz rejects requests without a valid Bearer token and stores the token claims
// under ContextUserClaims.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// Subject returns the "sub" claim stored by Authoriz, or "" when there is none.
func Subject(c *gin.Context) string {
	value, ok := c.Get(ContextUserClaims)
	if !ok {
		return ""
	}
	claims, ok := value.(map[string]interface{})
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
