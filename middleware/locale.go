package middleware

import (
	"net/http"
	"time"

	"legal_editor_app_go/config"
	"legal_editor_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const langCookie = "lang"

// Locale middleware resolves the UI language.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var lang string
			if q := c.QueryParam("lang"); q != "" {
				lang = i18n.Match(q)
				setLanguageCookie(c, lang, cfg.IsProduction())
			} else if cookie, err := c.Cookie(langCookie); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			} else {
				lang = i18n.Match(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			// Request context carries the locale into templ components
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

func setLanguageCookie(c echo.Context, lang string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     langCookie,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour), // 1 year
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return "en"
}
