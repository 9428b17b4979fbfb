package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/dto"
	"github.com/flicky/carcare-storefront/internal/model"
)

const userIDKey = "userID"

type TokenParser interface {
	ParseToken(raw string) (uuid.UUID, error)
}

// ProfileWaiter returns the caller's profile, waiting briefly for it to appear.
type ProfileWaiter interface {
	WaitForProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// BearerToken returns the token from the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("unauthorized"))
			return
		}
		userID, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid token"))
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth records the caller when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := BearerToken(c); token != "" {
			if userID, err := parser.ParseToken(token); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// AdminOnly must run after Auth. The role is read from the stored profile,
// never from the token.
func AdminOnly(profiles ProfileWaiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := profiles.WaitForProfile(c.Request.Context(), GetUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("internal server error"))
			return
		}
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("admin only"))
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(uuid.UUID)
	return uid
}
