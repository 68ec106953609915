package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"agency-hub/internal/pkg/auth"
	"agency-hub/internal/pkg/jwt"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
	"agency-hub/pkg/utils"
)

// AuthMiddleware verifies the bearer access token and stores its claims as the principal
func AuthMiddleware(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorWithCode(c, pkgErrors.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			utils.ErrorWithCode(c, pkgErrors.CodeUnauthorized, "authorization header must use the Bearer scheme")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// refresh tokens fail here: they are signed with the other secret
		claims, err := issuer.ParseAccess(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextPrincipal, claims)
		c.Next()
	}
}

// RequirePermission rejects principals whose role does not grant perm
func RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetPrincipal(c)
		if !ok {
			utils.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !auth.Allow([]string{claims.Role}, perm) {
			utils.Error(c, pkgErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the claims stored by AuthMiddleware
func GetPrincipal(c *gin.Context) (*jwt.UserClaims, bool) {
	value, exists := c.Get(constants.ContextPrincipal)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*jwt.UserClaims)
	return claims, ok
}
