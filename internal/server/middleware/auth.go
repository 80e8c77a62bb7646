package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/autorouter/internal/store"
	"github.com/nulzo/autorouter/internal/store/model"
	"github.com/nulzo/autorouter/pkg/api"
	"go.uber.org/zap"
)

// HashKey returns the hex sha256 under which API keys are stored.
func HashKey(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// matchesStatic compares the token digest against every configured digest
// in constant time, without stopping at the first hit.
func matchesStatic(digest [sha256.Size]byte, static [][sha256.Size]byte) bool {
	match := 0
	for _, s := range static {
		match |= subtle.ConstantTimeCompare(digest[:], s[:])
	}
	return match == 1
}

// Auth checks for a valid Bearer token in the Authorization header. Static
// keys from config are checked first, then the key store when repo is set.
func Auth(repo store.Repository, staticKeys []string, logger *zap.Logger) gin.HandlerFunc {
	var static [][sha256.Size]byte
	for _, k := range staticKeys {
		if k != "" {
			static = append(static, sha256.Sum256([]byte(k)))
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Missing Authorization header"})
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid Authorization header format"})
			return
		}
		digest := sha256.Sum256([]byte(strings.TrimSpace(token)))

		if matchesStatic(digest, static) {
			c.Next()
			return
		}

		if repo == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid API Key"})
			return
		}

		key, err := repo.APIKeys().GetByHash(c.Request.Context(), hex.EncodeToString(digest[:]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid API Key"})
			return
		}

		// Inject key into context for downstream use (logging)
		ctx := context.WithValue(c.Request.Context(), store.ContextKeyAPIKey, key)
		c.Request = c.Request.WithContext(ctx)

		// Update last used timestamp (async)
		go func(id string) {
			if err := repo.APIKeys().UpdateUsage(context.Background(), id); err != nil {
				logger.Warn("Failed to update API key usage", zap.String("key_id", id), zap.Error(err))
			}
		}(key.ID)

		c.Next()
	}
}

// APIKeyFrom returns the stored key that authenticated the request, if any.
func APIKeyFrom(ctx context.Context) (*model.APIKey, bool) {
	key, ok := ctx.Value(store.ContextKeyAPIKey).(*model.APIKey)
	return key, ok
}
