package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var ErrMissingAPIKey = errors.New("NEWSAPI_KEY is required")

type Config struct {
	NewsAPI NewsAPIConfig
	Server  ServerConfig
	Log     LogConfig
}

type NewsAPIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type ServerConfig struct {
	Port            string
	RateLimitPerMin int // 0 = без лимита
}

type LogConfig struct {
	Level string
}

// ClientConfig - настройки интерактивного клиента. Ничего не обязательно:
// пустой BackendURL означает, что адрес спросим у пользователя.
type ClientConfig struct {
	BackendURL string
	Timeout    time.Duration
	Log        LogConfig
}

// Load reads the gateway configuration from the environment. Без
// NEWSAPI_KEY шлюз не стартует; хендлеры перепроверяют ключ на каждом
// запросе, так что в тестах конфиг подменяется напрямую.
func Load() (*Config, error) {
	cfg := &Config{
		NewsAPI: NewsAPIConfig{
			APIKey:  os.Getenv("NEWSAPI_KEY"),
			BaseURL: getEnvOrDefault("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
			Timeout: time.Duration(getEnvIntOrDefault("NEWSAPI_TIMEOUT_SEC", 30)) * time.Second,
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8000"),
			RateLimitPerMin: getEnvIntOrDefault("RATE_LIMIT_PER_MIN", 0),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.NewsAPI.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func LoadClient() *ClientConfig {
	return &ClientConfig{
		BackendURL: os.Getenv("BACKEND_URL"),
		Timeout:    time.Duration(getEnvIntOrDefault("BACKEND_TIMEOUT_SEC", 60)) * time.Second,
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
