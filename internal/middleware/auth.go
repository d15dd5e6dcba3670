package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/auth"
	"github.com/rajtharani77/BlackBuck-pro/internal/models"
	"github.com/rajtharani77/BlackBuck-pro/internal/policy"
	"github.com/rajtharani77/BlackBuck-pro/internal/types"
)

// RequireAuth resolves the session for a request. The token is taken from
// the Authorization header first, falling back to the session cookie, and
// both transports feed the same verification path. On success the resolved
// identity is stored on the gin context for downstream handlers.
func RequireAuth(database *gorm.DB, tokens *auth.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := extractToken(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			return
		}

		userID, err := tokens.Verify(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, token failed"})
			return
		}

		var user models.User

		// A valid token may outlive its user.
		if err := database.Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, token failed"})
			return
		}

		ctx.Set(types.ContextUserKey, policy.Identity{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) (string, error) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fmt.Errorf("authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}

	cookie, err := ctx.Cookie(auth.CookieName)
	if err != nil || cookie == "" {
		return "", fmt.Errorf("no token")
	}
	return cookie, nil
}

// Authorize gates a route on a policy decision. It assumes RequireAuth ran
// earlier in the chain.
func Authorize(check func(policy.Identity) bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		identity, ok := value.(policy.Identity)

		if !exists || !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			return
		}

		if !check(identity) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("User role %s is not authorized to access this route", identity.Role),
			})
			return
		}

		ctx.Next()
	}
}
