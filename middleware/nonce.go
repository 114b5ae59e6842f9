package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/labstack/echo/v4"
)

type contextKey string

const NonceKey contextKey = "csp_nonce"

// contentPolicy lets only nonce-tagged scripts run, so script that slips
// into document content stays inert. Inline styles stay allowed: the editor
// and the page windows position everything with style attributes.
const contentPolicy = "default-src 'self'; script-src 'self' 'nonce-%s' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; object-src 'none'; base-uri 'self'"

// GenerateNonce creates a random nonce string
func GenerateNonce() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// CSPNonce generates a per-request nonce for the editor's inline scripts
// and sends the matching Content-Security-Policy
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				return fmt.Errorf("failed to generate nonce: %w", err)
			}

			c.Set(string(NonceKey), nonce)
			// templ components read it from the request context
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), NonceKey, nonce)))

			c.Response().Header().Set("Content-Security-Policy", fmt.Sprintf(contentPolicy, nonce))
			return next(c)
		}
	}
}

// GetNonce retrieves the nonce from the context
func GetNonce(ctx context.Context) string {
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}
