package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Auth   AuthConfig
	Ai     AIConfig
	Cache  CacheConfig
	Editor EditorConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	InstanceID         string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Users     map[string]string // email -> bcrypt hash
}

type AIConfig struct {
	LLMProvider     string // "openai", "anthropic", "ollama", "huggingface"
	LLMModel        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	HuggingFaceKey  string
	OllamaBaseURL   string
	MaxTokens       int
	Temperature     float64
	PresencePenalty float64
	Timeout         time.Duration
}

type CacheConfig struct {
	Backend string // "memory" or "redis"
	TTL     time.Duration
}

type EditorConfig struct {
	Debounce      time.Duration
	MinContext    int
	ContextWindow int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			InstanceID:         getEnv("INSTANCE_ID", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 24*time.Hour),
			Users:     parseUsers(getEnv("AUTH_USERS", "")),
		},
		Ai: AIConfig{
			LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			LLMModel:        getEnv("LLM_MODEL", ""),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			HuggingFaceKey:  getEnv("HUGGINGFACE_API_KEY", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 30),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.6),
			PresencePenalty: getEnvAsFloat("LLM_PRESENCE_PENALTY", 0.1),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
			TTL:     getEnvAsDuration("CACHE_TTL", 60*time.Second),
		},
		Editor: EditorConfig{
			Debounce:      getEnvAsDuration("EDITOR_DEBOUNCE", 500*time.Millisecond),
			MinContext:    getEnvAsInt("EDITOR_MIN_CONTEXT", 5),
			ContextWindow: getEnvAsInt("EDITOR_CONTEXT_WINDOW", 150),
		},
	}
}

// LLMCredential returns the key for the selected provider. Ollama needs none,
// so its base URL stands in.
func (c *Config) LLMCredential() string {
	switch c.Ai.LLMProvider {
	case "anthropic":
		return c.Ai.AnthropicAPIKey
	case "huggingface":
		return c.Ai.HuggingFaceKey
	case "ollama":
		return c.Ai.OllamaBaseURL
	default:
		return c.Ai.OpenAIAPIKey
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// parseUsers reads "email:hash,email:hash". Bcrypt hashes contain no commas.
func parseUsers(raw string) map[string]string {
	users := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		email, hash, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || email == "" || hash == "" {
			continue
		}
		users[strings.ToLower(email)] = hash
	}
	return users
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("750ms") or bare seconds ("60").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
