package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
	LedgerSheets   = "sheets"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config is the process configuration, read once at startup.
type Config struct {
	AppEnv string
	Port   string

	AllowedOrigins []string

	Provider        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	GeminiAPIKey    string
	DefaultModel    string
	ProviderTimeout time.Duration
	VerifyVenues    bool

	LedgerBackend         string
	PostgresURL           string
	SQLitePath            string
	SheetsSpreadsheetID   string
	SheetsTab             string
	GoogleCredentialsFile string
	LedgerTimeout         time.Duration

	SessionStore string
	RedisAddr    string
	SessionTTL   time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		AppEnv:         getEnvWithDefault("APP_ENV", "development"),
		Port:           getEnvWithDefault("PORT", "8080"),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8501"}),

		Provider:        strings.ToLower(getEnvWithDefault("PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   strings.TrimRight(getEnvWithDefault("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		ProviderTimeout: getEnvSeconds("PROVIDER_TIMEOUT_SECONDS", 120),
		VerifyVenues:    getEnvBool("PROMPT_VERIFY_VENUES", false),

		LedgerBackend:         strings.ToLower(getEnvWithDefault("LEDGER_BACKEND", LedgerPostgres)),
		PostgresURL:           os.Getenv("POSTGRES_URL"),
		SQLitePath:            getEnvWithDefault("SQLITE_PATH", "reout.db"),
		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		SheetsTab:             getEnvWithDefault("SHEETS_TAB", "Feedback"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		LedgerTimeout:         getEnvSeconds("LEDGER_TIMEOUT_SECONDS", 30),

		SessionStore: strings.ToLower(getEnvWithDefault("SESSION_STORE", SessionStoreMemory)),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		SessionTTL:   getEnvSeconds("SESSION_TTL_SECONDS", 6*60*60),
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.DefaultModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if cfg.OpenAIAPIKey == "" {
			return cfg, errors.New("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case ProviderGemini:
		cfg.DefaultModel = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if cfg.GeminiAPIKey == "" {
			return cfg, errors.New("GEMINI_API_KEY is required when using Gemini provider")
		}
	default:
		return cfg, fmt.Errorf("unsupported provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}

	switch cfg.LedgerBackend {
	case LedgerPostgres:
		if cfg.PostgresURL == "" {
			return cfg, errors.New("POSTGRES_URL is required when using the postgres ledger")
		}
	case LedgerSQLite:
	case LedgerSheets:
		if cfg.SheetsSpreadsheetID == "" {
			return cfg, errors.New("SHEETS_SPREADSHEET_ID is required when using the sheets ledger")
		}
	default:
		return cfg, fmt.Errorf("unsupported ledger backend: %s", cfg.LedgerBackend)
	}

	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.RedisAddr == "" {
			return cfg, errors.New("REDIS_ADDR is required when using the redis session store")
		}
	default:
		return cfg, fmt.Errorf("unsupported session store: %s", cfg.SessionStore)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, def int) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return time.Duration(def) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(def) * time.Second
	}
	return time.Duration(n) * time.Second
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
