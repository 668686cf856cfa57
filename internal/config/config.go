package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/modbridge/modbridge-backend/internal/inference/engine"
)

// Config is everything the service reads from the environment besides the
// store connection strings, which the platform clients load themselves.
type Config struct {
	HTTPAddr    string
	LogMode     string
	Environment string
	Version     string

	Engine engine.Config
}

// Load reads INFERENCE_* overrides on top of the engine defaults. Invalid
// values fall back to defaults; the engine re-validates its own ranges.
func Load() Config {
	def := engine.DefaultConfig()

	return Config{
		HTTPAddr:    getString("HTTP_ADDR", ":8080"),
		LogMode:     getString("LOG_MODE", "development"),
		Environment: getString("ENVIRONMENT", "development"),
		Version:     getString("SERVICE_VERSION", "dev"),
		Engine: engine.Config{
			DefaultMaxDepth:      getInt("INFERENCE_MAX_DEPTH", def.DefaultMaxDepth),
			MaxDepthCeiling:      def.MaxDepthCeiling,
			DefaultMinConfidence: getFloat("INFERENCE_MIN_CONFIDENCE", def.DefaultMinConfidence),
			MinSimilarity:        getFloat("INFERENCE_MIN_SIMILARITY", def.MinSimilarity),
			MaxSuggestions:       getInt("INFERENCE_MAX_SUGGESTIONS", def.MaxSuggestions),
			MaxAlternatives:      getInt("INFERENCE_MAX_ALTERNATIVES", def.MaxAlternatives),
			GraphTimeout:         getSeconds("INFERENCE_GRAPH_TIMEOUT_SECONDS", def.GraphTimeout),
			BatchConcurrency:     getInt("INFERENCE_BATCH_CONCURRENCY", def.BatchConcurrency),
			CacheTTL:             getSeconds("INFERENCE_CACHE_TTL_SECONDS", def.CacheTTL),
			LearningAlpha:        getFloat("INFERENCE_LEARNING_ALPHA", def.LearningAlpha),
		},
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getSeconds(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return time.Duration(i) * time.Second
}
