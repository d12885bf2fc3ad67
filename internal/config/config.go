// Package config defines the run-time options the matching pipeline
// is driven by, with environment-variable loading and validation in
// the same style as the rest of the stack.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"dedupe/internal/matcherr"
	"dedupe/internal/rulegate"
)

// Config holds every tunable named in the external interface: the
// thresholds the matcher applies, the phonetic fallback switch, the
// concurrency knobs the block runner reads, and the ambiguous-year
// policy escape hatch.
type Config struct {
	FuzzyThreshold      float64 `json:"fuzzy_threshold"`
	PhoneticFallbackLow float64 `json:"phonetic_fallback_low"`
	ConfidenceThreshold int     `json:"confidence_threshold"`
	UsePhonetic         bool    `json:"use_phonetic"`
	UseParallel         bool    `json:"use_parallel"`
	Workers             int     `json:"workers"`
	MaxBlockSize        int     `json:"max_block_size"`

	AmbiguousYearPolicy rulegate.AmbiguousYearPolicy `json:"ambiguous_year_policy"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		FuzzyThreshold:      0.70,
		PhoneticFallbackLow: 0.60,
		ConfidenceThreshold: 70,
		UsePhonetic:         true,
		UseParallel:         true,
		Workers:             0, // 0 means "CPU count minus one, at least 1, derived at run time"
		MaxBlockSize:        10_000,
		AmbiguousYearPolicy: rulegate.RejectAmbiguous,
	}
}

// LoadConfigFromEnv builds a Config from environment variables,
// falling back to DefaultConfig's values for anything unset, then
// validates the result.
func LoadConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	cfg.FuzzyThreshold = getEnvFloat("DEDUPE_FUZZY_THRESHOLD", cfg.FuzzyThreshold)
	cfg.PhoneticFallbackLow = getEnvFloat("DEDUPE_PHONETIC_FALLBACK_LOW", cfg.PhoneticFallbackLow)
	cfg.ConfidenceThreshold = getEnvInt("DEDUPE_CONFIDENCE_THRESHOLD", cfg.ConfidenceThreshold)
	cfg.UsePhonetic = getEnvBool("DEDUPE_USE_PHONETIC", cfg.UsePhonetic)
	cfg.UseParallel = getEnvBool("DEDUPE_USE_PARALLEL", cfg.UseParallel)
	cfg.Workers = getEnvInt("DEDUPE_WORKERS", cfg.Workers)
	cfg.MaxBlockSize = getEnvInt("DEDUPE_MAX_BLOCK_SIZE", cfg.MaxBlockSize)

	if getEnv("DEDUPE_AMBIGUOUS_YEAR_POLICY", "") == "pass" {
		cfg.AmbiguousYearPolicy = rulegate.PassAmbiguous
	}

	if err := cfg.Validate(); err != nil {
		return nil, matcherr.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.ToLower(v) == "true"
	}
	return defaultValue
}

// Validate checks every field against the ranges the pipeline assumes.
// A config error here is the one place the pipeline fails fast instead
// of degrading: bad thresholds would silently warp every score.
func (c *Config) Validate() error {
	var errs []string

	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		errs = append(errs, fmt.Sprintf("fuzzy_threshold must be in [0,1], got %v", c.FuzzyThreshold))
	}
	if c.PhoneticFallbackLow < 0 || c.PhoneticFallbackLow > 1 {
		errs = append(errs, fmt.Sprintf("phonetic_fallback_low must be in [0,1], got %v", c.PhoneticFallbackLow))
	}
	if c.PhoneticFallbackLow > c.FuzzyThreshold {
		errs = append(errs, "phonetic_fallback_low cannot exceed fuzzy_threshold")
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 100 {
		errs = append(errs, fmt.Sprintf("confidence_threshold must be in [0,100], got %d", c.ConfidenceThreshold))
	}
	if c.Workers < 0 {
		errs = append(errs, "workers cannot be negative")
	}
	if c.MaxBlockSize < 2 {
		errs = append(errs, "max_block_size must be at least 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
