package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/danger_zones/internal/config"
	"github.com/sirupsen/logrus"
)

const bearerPrefix = "Bearer "

// APIKeyAuthMiddleware закрывает административные маршруты зон API-ключом
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := log.WithFields(logrus.Fields{
			"middleware": "api_key",
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"client_ip":  c.ClientIP(),
		})

		key, ok := requestAPIKey(c.Request)
		if !ok {
			log.Warn("Admin request without API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}
		if !knownAPIKey(cfg.APIKeys, key) {
			// сам ключ не логируется
			log.Warn("Admin request with unknown API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// requestAPIKey достает ключ из X-API-Key, иначе из Authorization: Bearer
func requestAPIKey(r *http.Request) (string, bool) {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key, true
	}
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) {
		return "", false
	}
	key := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
	return key, key != ""
}

// knownAPIKey сравнивает со всеми ключами за постоянное время
func knownAPIKey(keys []string, candidate string) bool {
	found := 0
	for _, key := range keys {
		found |= subtle.ConstantTimeCompare([]byte(key), []byte(candidate))
	}
	return found == 1
}
