package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
)

//go:embed *.json
var fs embed.FS

// Editor UI labels, flattened: "en" -> "toolbar.page_break" -> "Page Break"
var (
	translations = make(map[string]map[string]string)
	mutex        sync.RWMutex
	defaultLang  = "en"
)

// Supported lists the UI languages, default first
var Supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(Supported)

// shortDateLayouts mirror the browser's numeric toLocaleDateString output
var shortDateLayouts = map[string]string{
	"en": "1/2/2006",
	"es": "2/1/2006",
}

// Load reads every embedded locale file
func Load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var nested map[string]interface{}
		if err := json.Unmarshal(content, &nested); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		translations[lang] = flat
		log.Printf("Loaded locale: %s (%d keys)", lang, len(flat))
	}

	return nil
}

// flatten turns nested maps into dot-notation keys
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(key, child, result)
		case string:
			result[key] = child
		default:
			result[key] = fmt.Sprintf("%v", child)
		}
	}
}

// T translates key into the language stored in ctx
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate looks key up in lang, then in the default language, then
// returns the key itself.
func Translate(lang, key string, args ...map[string]interface{}) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}
	if lang != defaultLang {
		if val, ok := translations[defaultLang][key]; ok {
			return format(val, args...)
		}
	}
	return key
}

// format replaces {var} placeholders with values from args
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}
	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

// Match picks the supported language for any number of candidate
// preferences (query values, cookies, Accept-Language headers).
func Match(preferences ...string) string {
	tag, _ := language.MatchStrings(matcher, preferences...)
	base, _ := tag.Base()
	for _, s := range Supported {
		if b, _ := s.Base(); b == base {
			return base.String()
		}
	}
	return defaultLang
}

// IsSupported reports whether lang is exactly one of the UI languages
func IsSupported(lang string) bool {
	_, ok := shortDateLayouts[lang]
	return ok
}

// FormatShortDate renders t as a numeric date in the order lang uses
func FormatShortDate(lang string, t time.Time) string {
	layout, ok := shortDateLayouts[lang]
	if !ok {
		layout = shortDateLayouts[defaultLang]
	}
	return t.Format(layout)
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// WithLocale stores lang in ctx
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}

// GetLocale extracts the locale set by middleware, defaulting to "en"
func GetLocale(ctx context.Context) string {
	if val, ok := ctx.Value(LocaleContextKey).(string); ok && val != "" {
		return val
	}
	return defaultLang
}
