package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const StoreContextKey = "storeID"

// OwnerAuth validates the dashboard bearer token and puts the owner's
// store id on the request context. Every owner route is scoped to that
// store; a token can never operate on another tenant.
func OwnerAuth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		storeID, _ := claims["store_id"].(string)
		if _, err := uuid.Parse(storeID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(StoreContextKey, storeID)
		c.Next()
	}
}

// GetStoreID returns the authenticated owner's store id.
func GetStoreID(c *gin.Context) (uuid.UUID, error) {
	val, ok := c.Get(StoreContextKey)
	if !ok {
		return uuid.Nil, errors.New("store ID not found in context")
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return uuid.Nil, errors.New("store ID not found in context")
	}
	return uuid.Parse(id)
}
