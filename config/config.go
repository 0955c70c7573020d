package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort        string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	SummarizeTimeout  time.Duration
	RateLimit         int
	RateLimitInterval time.Duration

	DBPath string
	LogDir string

	// Generative model settings
	GeminiAPIKey     string
	ModelName        string
	ChunkSize        int
	ModelCallsPerMin int

	// Caption selection
	LanguagePriority []string

	// Speech-to-text fallback for videos without captions
	SpeechFallback   bool
	SpeechScriptPath string
	SpeechTimeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:        GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		SummarizeTimeout:  getEnvAsDuration("SUMMARIZE_TIMEOUT", 10*time.Minute),
		RateLimit:         getEnvAsInt("RATE_LIMIT", 5),
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 1*time.Second),
		DBPath:            GetEnv("DB_PATH", "./data/summaries.db"),
		LogDir:            GetEnv("LOG_DIR", "./logs"),
		GeminiAPIKey:      GetEnv("GEMINI_API_KEY", ""),
		ModelName:         GetEnv("MODEL_NAME", "gemini-1.5-pro"),
		ChunkSize:         getEnvAsInt("CHUNK_SIZE", 4000),
		ModelCallsPerMin:  getEnvAsInt("MODEL_CALLS_PER_MIN", 30),
		LanguagePriority:  getEnvAsStringSlice("LANGUAGE_PRIORITY", []string{"en", "ko"}),
		SpeechFallback:    getEnvAsBool("SPEECH_FALLBACK", false),
		SpeechScriptPath:  GetEnv("SPEECH_SCRIPT_PATH", "transcribe.py"),
		SpeechTimeout:     getEnvAsDuration("SPEECH_TIMEOUT", 10*time.Minute),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.DBPath == "" {
		return errors.New("database path is required")
	}
	if cfg.SummarizeTimeout <= 0 {
		return errors.New("summarize timeout must be greater than 0")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if cfg.ChunkSize <= 0 {
		return errors.New("chunk size must be greater than 0")
	}
	if len(cfg.LanguagePriority) == 0 {
		return errors.New("language priority list must not be empty")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	return nil
}
