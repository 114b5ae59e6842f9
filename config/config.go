package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultMeasureDelay is the quiescence delay before content is measured
	DefaultMeasureDelay = 100 * time.Millisecond
	// DefaultMeasureTimeout bounds one deferred measurement
	DefaultMeasureTimeout = 10 * time.Second

	MeasurerChrome    = "chrome"
	MeasurerHeuristic = "heuristic"
)

type Config struct {
	ServerPort  string
	Environment string
	// Page model
	PageSize        string // A4, letter, legal
	MeasureDelay    time.Duration
	MeasureTimeout  time.Duration
	Measurer        string // chrome, heuristic
	ChromePath      string
	PaginationDebug bool
	// Editor
	DefaultTitle         string
	UpdateRateLimit      int // content changes per minute per client and document
	MeasurementRateLimit int // browser measurement reports per minute per client and document
	// Exports
	ExportDir string
	// Other
	AllowedOrigins []string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	measurer := strings.ToLower(getEnv("MEASURER", MeasurerHeuristic))
	if measurer != MeasurerChrome && measurer != MeasurerHeuristic {
		log.Printf("[WARNING] Unknown MEASURER %q, falling back to %s", measurer, MeasurerHeuristic)
		measurer = MeasurerHeuristic
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		PageSize:             getEnv("PAGE_SIZE", "A4"),
		MeasureDelay:         getEnvDuration("MEASURE_DELAY_MS", DefaultMeasureDelay),
		MeasureTimeout:       getEnvDuration("MEASURE_TIMEOUT_MS", DefaultMeasureTimeout),
		Measurer:             measurer,
		ChromePath:           getEnv("CHROME_PATH", ""),
		PaginationDebug:      getEnvBool("PAGINATION_DEBUG", false),
		DefaultTitle:         getEnv("DEFAULT_DOCUMENT_TITLE", "Legal Document"),
		UpdateRateLimit:      getEnvInt("UPDATE_RATE_LIMIT", 600),
		MeasurementRateLimit: getEnvInt("MEASUREMENT_RATE_LIMIT", 600),
		ExportDir:            getEnv("EXPORT_DIR", "static/exports"),
		AllowedOrigins:       strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		R2AccountID:          getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:        getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:    getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:         getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:          getEnv("R2_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration reads a millisecond count
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	ms := getEnvInt(key, int(defaultValue/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
