package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DEFAULT_HF_BASE_URL        = "https://router.huggingface.co/hf-inference/models"
	DEFAULT_GROQ_BASE_URL      = "https://api.groq.com/openai/v1"
	DEFAULT_GROQ_MODEL         = "llama-3.1-8b-instant"
	DEFAULT_KAFKA_TOPIC        = "feedback-reports"
	DEFAULT_CACHE_TTL          = 24 * time.Hour
	PRODUCTION_REQUEST_TIMEOUT = 10 * time.Second
	DEFAULT_REQUEST_TIMEOUT    = 30 * time.Second
)

// Config holds every optional knob of the pipeline. Empty credentials and
// addresses disable whatever depends on them.
type Config struct {
	AppEnv   string
	LogLevel string

	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string

	// second provider, OpenAI-compatible chat API
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	RequestTimeout time.Duration

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	CacheTTL       time.Duration

	KafkaBroker      string
	KafkaReportTopic string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDurationSeconds(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}

// FromEnv builds a Config from the current process environment.
func FromEnv() Config {
	env := getEnv("APP_ENV", "dev")

	timeout := DEFAULT_REQUEST_TIMEOUT
	if env == "production" {
		timeout = PRODUCTION_REQUEST_TIMEOUT
	}

	return Config{
		AppEnv:             env,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HuggingFaceAPIKey:  os.Getenv("HUGGINGFACE_API_KEY"),
		HuggingFaceBaseURL: getEnv("HF_INFERENCE_BASE_URL", DEFAULT_HF_BASE_URL),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", DEFAULT_GROQ_BASE_URL),
		GroqModel:          getEnv("GROQ_MODEL", DEFAULT_GROQ_MODEL),
		RequestTimeout:     getDurationSeconds("REQUEST_TIMEOUT_SECONDS", timeout),
		ValkeyAddress:      os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:     os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:          os.Getenv("VALKEY_TLS") == "true",
		CacheTTL:           getDurationSeconds("CACHE_TTL_SECONDS", DEFAULT_CACHE_TTL),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaReportTopic:   getEnv("KAFKA_REPORT_TOPIC", DEFAULT_KAFKA_TOPIC),
	}
}
