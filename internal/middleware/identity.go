// internal/middleware/identity.go
package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/avdeenko/strapshop-backend/internal/models"
)

const visitorCookie = "visitor_token"

const visitorCookieMaxAge = 365 * 24 * 3600

type accessClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Identity resolves the acting owner for every request: a customer id from a
// valid Bearer token, otherwise an anonymous visitor token persisted in a
// cookie (minted here on first contact). Exactly one side ends up set.
func Identity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if customerID, ok := customerFromHeader(c, jwtSecret); ok {
			c.Set("customer_id", customerID)
			c.Next()
			return
		}

		token, err := c.Cookie(visitorCookie)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetCookie(visitorCookie, token, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set("visitor_id", token)
		c.Next()
	}
}

func customerFromHeader(c *gin.Context, secret string) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}

// OwnerFromContext rebuilds the Owner the Identity middleware resolved.
func OwnerFromContext(c *gin.Context) models.Owner {
	if v, exists := c.Get("customer_id"); exists {
		if id, ok := v.(uint); ok {
			return models.CustomerOwner(id)
		}
	}
	if v, exists := c.Get("visitor_id"); exists {
		if token, ok := v.(string); ok {
			return models.VisitorOwner(token)
		}
	}
	return models.Owner{}
}
