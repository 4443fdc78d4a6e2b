package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"warehouse-system/internal/services/user"
)

// IdentityKey is the gin context key holding the resolved user.Identity.
const IdentityKey = "identity"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Identity, error)
}

func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// JWTAuth rejects requests without a valid bearer token and stores the
// identity on both the gin context and the request context.
func JWTAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized", "Missing bearer token")
			return
		}

		id, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		c.Set(IdentityKey, id)
		c.Request = c.Request.WithContext(user.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
