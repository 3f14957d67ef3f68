package internal

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DukeRupert/nhcadvocate/internal/appointment"
	"github.com/DukeRupert/nhcadvocate/internal/domain"
	"github.com/DukeRupert/nhcadvocate/internal/media"
	"github.com/DukeRupert/nhcadvocate/internal/middleware"
	"github.com/DukeRupert/nhcadvocate/internal/site"
)

// Case type presets accepted by APPOINTMENT_CASE_TYPES.
const (
	CaseTypesStandard = "standard"
	CaseTypesExtended = "extended"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Optional rotating log file alongside stdout
	LogFile LogFileConfig

	// Canonical URL prefix for SEO tags
	BaseURL string

	// Appointment form and WhatsApp deep link
	Appointment appointment.Config

	// Home page language when nothing else selects one
	DefaultLang site.Lang

	// Media Configuration
	MediaProvider        string // "remote", "local" or "r2"
	LocalMediaPath       string
	MediaRefreshInterval time.Duration

	// R2 Media (production)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string // Optional; presigned URLs are used without it
	R2PresignExpiry   time.Duration

	// Appointment POST rate limiting per client IP
	AppointmentRateLimit  int
	AppointmentRateWindow time.Duration

	// Reverse proxies whose X-Forwarded-For and X-Real-IP are believed.
	// Empty means the connection's peer address is the client.
	TrustedProxies []netip.Prefix

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername     string
	MetricsPasswordHash string // bcrypt hash

	// Load templates from disk instead of the embedded copy
	TemplatesDir string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		LogFile: LogFileConfig{
			Path:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 30),
		},

		// Base URL defaults to localhost for development
		BaseURL: strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:8080"), "/"),

		// Media defaults to the images hosted with the original site
		MediaProvider:        getEnv("MEDIA_PROVIDER", media.ProviderRemote),
		LocalMediaPath:       getEnv("LOCAL_MEDIA_PATH", "./media"),
		MediaRefreshInterval: getEnvDuration("MEDIA_REFRESH_INTERVAL", 6*time.Hour),

		// R2 configuration (production only)
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2PresignExpiry:   getEnvDuration("R2_PRESIGN_EXPIRY", media.DefaultPresignExpiry),

		// Rate limiting defaults
		AppointmentRateLimit:  getEnvInt("APPOINTMENT_RATE_LIMIT", 10),
		AppointmentRateWindow: getEnvDuration("APPOINTMENT_RATE_WINDOW", 10*time.Minute),

		// Metrics authentication
		MetricsUsername:     getEnv("METRICS_USERNAME", ""),
		MetricsPasswordHash: getEnv("METRICS_PASSWORD_HASH", ""),

		TemplatesDir: getEnv("TEMPLATES_DIR", ""),
	}

	appt, err := appointmentConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Appointment = appt

	lang, ok := site.ParseLang(getEnv("DEFAULT_LANG", string(site.LangEnglish)))
	if !ok {
		return nil, fmt.Errorf("DEFAULT_LANG must be one of en, kn, hi, got: %s", os.Getenv("DEFAULT_LANG"))
	}
	cfg.DefaultLang = lang

	proxies, err := middleware.ParseProxies(splitList(os.Getenv("TRUSTED_PROXIES"), false))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	// Validate media configuration
	switch cfg.MediaProvider {
	case media.ProviderRemote, media.ProviderLocal:
	case media.ProviderR2:
		if cfg.R2AccountID == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID is required when MEDIA_PROVIDER is 'r2'")
		}
		if cfg.R2AccessKeyID == "" {
			return nil, fmt.Errorf("R2_ACCESS_KEY_ID is required when MEDIA_PROVIDER is 'r2'")
		}
		if cfg.R2SecretAccessKey == "" {
			return nil, fmt.Errorf("R2_SECRET_ACCESS_KEY is required when MEDIA_PROVIDER is 'r2'")
		}
		if cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_BUCKET_NAME is required when MEDIA_PROVIDER is 'r2'")
		}
	default:
		return nil, fmt.Errorf("MEDIA_PROVIDER must be one of 'remote', 'local' or 'r2', got: %s", cfg.MediaProvider)
	}

	if cfg.AppointmentRateLimit <= 0 {
		return nil, fmt.Errorf("APPOINTMENT_RATE_LIMIT must be positive, got: %d", cfg.AppointmentRateLimit)
	}

	if (cfg.MetricsUsername == "") != (cfg.MetricsPasswordHash == "") {
		return nil, fmt.Errorf("METRICS_USERNAME and METRICS_PASSWORD_HASH must be set together")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// appointmentConfigFromEnv builds the form schema. The composer validates
// the result when it is constructed.
func appointmentConfigFromEnv() (appointment.Config, error) {
	cfg := appointment.DefaultConfig()

	cfg.RecipientNumber = getEnv("WHATSAPP_NUMBER", appointment.DefaultRecipientNumber)
	cfg.StrictPhone = getEnvBool("APPOINTMENT_STRICT_PHONE", true)

	switch caseTypes := strings.TrimSpace(os.Getenv("APPOINTMENT_CASE_TYPES")); strings.ToLower(caseTypes) {
	case "", CaseTypesStandard:
		cfg.CaseTypes = append([]string(nil), domain.StandardCaseTypes...)
	case CaseTypesExtended:
		cfg.CaseTypes = append([]string(nil), domain.ExtendedCaseTypes...)
	default:
		cfg.CaseTypes = splitList(caseTypes, false)
	}

	if v, ok := os.LookupEnv("APPOINTMENT_FIELDS"); ok {
		cfg.SchemaFields = splitList(v, true)
	}
	cfg.RequiredFields = splitList(os.Getenv("APPOINTMENT_REQUIRED_FIELDS"), true)

	for _, f := range cfg.RequiredFields {
		if !domain.IsOptionalField(f) {
			return cfg, fmt.Errorf("APPOINTMENT_REQUIRED_FIELDS: %q is not an optional field", f)
		}
	}

	return cfg, nil
}

// splitList parses a comma-separated environment value, dropping blanks.
func splitList(value string, lower bool) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if lower {
			part = strings.ToLower(part)
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
