package auth

import (
	"net/http"
	"strings"

	"staff-backoffice-backend/internal/identity"

	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key holding the caller
const identityKey = "identity"

// AuthMiddleware provides JWT authentication and policy middleware
type AuthMiddleware struct {
	tokens     *TokenService
	denylist   *TokenDenylist
	authorizer *Authorizer
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokens *TokenService, denylist *TokenDenylist, authorizer *Authorizer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, denylist: denylist, authorizer: authorizer}
}

// RequireAuth validates the bearer token and puts the identity on the request context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		id, err := m.tokens.Validate(tokenString)
		if err != nil || m.denylist.IsRevoked(id.TokenID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))

		c.Next()
	}
}

// RequirePolicy rejects callers that do not pass the named policy
func (m *AuthMiddleware) RequirePolicy(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !m.authorizer.Allows(id, name) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to perform this operation", "policy": name})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetIdentity is a helper function to extract the caller from the gin context
func GetIdentity(c *gin.Context) (*identity.Identity, bool) {
	if value, exists := c.Get(identityKey); exists {
		if id, ok := value.(*identity.Identity); ok && id != nil {
			return id, true
		}
	}
	return identity.FromContext(c.Request.Context())
}
