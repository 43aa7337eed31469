package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/i18n"
	"golang.org/x/crypto/bcrypt"
)

const (
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "api_key"
)

// AuthConfig selects the accepted credentials. With no keys and no secret
// authentication is disabled. A key in bcrypt form ("$2a$...", see
// `parcelctl secret --hash`) matches the plain key it was hashed from.
type AuthConfig struct {
	APIKeys   map[string]bool
	JWTSecret []byte
}

// Enabled reports whether any credential is configured.
func (a AuthConfig) Enabled() bool {
	return len(a.APIKeys) > 0 || len(a.JWTSecret) > 0
}

// Authenticate accepts an API key (header or query) or a bearer token,
// whichever the request carries, and records the caller as the principal.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled() {
			c.Next()
			return
		}

		if key := apiKey(c); key != "" {
			if !validKey(cfg.APIKeys, key) {
				abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidAPIKey)
				return
			}
			c.Set(string(PrincipalKey), "key:"+keyFingerprint(key))
			c.Next()
			return
		}

		if header := c.GetHeader("Authorization"); header != "" && len(cfg.JWTSecret) > 0 {
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
				return
			}
			subject, err := VerifyToken(cfg.JWTSecret, strings.TrimSpace(token))
			if err != nil {
				Logger(c).Debug().Err(err).Msg("bearer token rejected")
				abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
				return
			}
			c.Set(string(PrincipalKey), "user:"+subject)
			c.Next()
			return
		}

		key := i18n.ErrKeyAPIKeyRequired
		if len(cfg.APIKeys) == 0 {
			key = i18n.ErrKeyTokenRequired
		}
		abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, key)
	}
}

func apiKey(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}

func validKey(keys map[string]bool, key string) bool {
	for k := range keys {
		if IsHashedKey(k) {
			if bcrypt.CompareHashAndPassword([]byte(k), []byte(key)) == nil {
				return true
			}
			continue
		}
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// IsHashedKey reports whether a configured key is a bcrypt hash.
func IsHashedKey(k string) bool {
	_, err := bcrypt.Cost([]byte(k))
	return err == nil
}

// HashKey returns the bcrypt form of an API key for API_KEYS.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// keyFingerprint keeps API keys out of logs and rate limit buckets.
func keyFingerprint(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
