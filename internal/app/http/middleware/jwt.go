package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"hiringkit-app/config"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/domain/identity"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// CurrentIdentity returns the caller resolved by AuthMiddleware or
// OptionalAuthMiddleware. Absent means guest.
func CurrentIdentity(c *gin.Context) identity.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(identity.Identity); ok {
			return ident
		}
	}
	return identity.Guest()
}

// SetIdentity exists for handler tests that bypass the middleware chain.
func SetIdentity(c *gin.Context, ident identity.Identity) {
	c.Set(identityKey, ident)
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := identityFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, err.Error())
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves a bearer token when one is present and
// falls back to guest otherwise. A malformed or expired token is rejected
// rather than silently downgraded to guest.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(identityKey, identity.Guest())
			c.Next()
			return
		}
		ident, err := identityFromHeader(header)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, err.Error())
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if !ident.IsAuthenticated() {
			httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Authentication required")
			return
		}
		if role == identity.RoleAdmin && !ident.IsAdmin() {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "Access denied")
			return
		}
		c.Next()
	}
}

func identityFromHeader(header string) (identity.Identity, error) {
	if header == "" {
		return identity.Guest(), fmt.Errorf("authorization header missing")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header {
		return identity.Guest(), fmt.Errorf("bearer token malformed")
	}

	jwtKey := []byte(config.JWT_SECRET)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return identity.Guest(), fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Guest(), fmt.Errorf("invalid token claims")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return identity.Guest(), fmt.Errorf("token missing user_id")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	var orgID *string
	if v, ok := claims["org_id"].(string); ok && v != "" {
		orgID = &v
	}

	return identity.Authenticated(userID, email, role, orgID), nil
}
