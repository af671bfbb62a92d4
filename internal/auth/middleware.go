package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const subjectContextKey = "atlasAuthSubject"

// Middleware validates bearer tokens and stores the authenticated subject in
// the request context.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid authorization header"})
			return
		}

		subject, err := service.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(subjectContextKey, subject)
		c.Next()
	}
}

// Subject extracts the authenticated subject from the context.
func Subject(c *gin.Context) (string, bool) {
	value, exists := c.Get(subjectContextKey)
	if !exists {
		return "", false
	}
	subject, ok := value.(string)
	return subject, ok && subject != ""
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
