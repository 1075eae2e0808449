package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration (publishing is disabled when RedisAddr is empty)
	RedisAddr   string
	RedisDB     int
	RedisStream string

	// Memcache configuration (rate-limit guard, disabled when empty)
	MemcacheAddr string

	// Browser configuration
	Headless bool

	// Fetch tuning
	FetchTimeout time.Duration
	MaxRetries   int

	// Delay range between segments
	SegmentDelayMin time.Duration
	SegmentDelayMax time.Duration

	// Report configuration
	MinDiscount float64
	OutputDir   string

	// Retailer search URLs
	AmazonSearchURL  string
	WalmartSearchURL string

	// Retailer toggles
	AmazonEnabled  bool
	WalmartEnabled bool

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "15"))
	maxRetries, _ := strconv.Atoi(getEnv("FETCH_MAX_RETRIES", "3"))
	delayMin, _ := strconv.Atoi(getEnv("SEGMENT_DELAY_MIN_MS", "2000"))
	delayMax, _ := strconv.Atoi(getEnv("SEGMENT_DELAY_MAX_MS", "5000"))
	minDiscount, _ := strconv.ParseFloat(getEnv("MIN_DISCOUNT_PCT", "0"), 64)

	return Config{
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisDB:          redisDB,
		RedisStream:      getEnv("REDIS_STREAM", "deals"),
		MemcacheAddr:     getEnv("MEMCACHE_ADDR", ""),
		Headless:         getEnv("BROWSER_HEADLESS", "true") == "true",
		FetchTimeout:     time.Duration(fetchTimeout) * time.Second,
		MaxRetries:       maxRetries,
		SegmentDelayMin:  time.Duration(delayMin) * time.Millisecond,
		SegmentDelayMax:  time.Duration(delayMax) * time.Millisecond,
		MinDiscount:      minDiscount,
		OutputDir:        getEnv("OUTPUT_DIR", "."),
		AmazonSearchURL:  getEnv("AMAZON_SEARCH_URL", "https://www.amazon.com/s?k=%s"),
		WalmartSearchURL: getEnv("WALMART_SEARCH_URL", "https://www.walmart.com/search?q=%s"),
		AmazonEnabled:    getEnv("AMAZON_ENABLED", "true") == "true",
		WalmartEnabled:   getEnv("WALMART_ENABLED", "true") == "true",
		Environment:      getEnv("PRICEHOUND_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.SegmentDelayMin > c.SegmentDelayMax {
		return fmt.Errorf("segment delay range is inverted: %v > %v", c.SegmentDelayMin, c.SegmentDelayMax)
	}
	if c.MinDiscount < 0 || c.MinDiscount > 100 {
		return fmt.Errorf("minimum discount must be within [0,100], got %.1f", c.MinDiscount)
	}
	if !c.AmazonEnabled && !c.WalmartEnabled {
		return fmt.Errorf("no retailers enabled")
	}
	// Search URL templates take exactly one %s for the escaped search terms
	if c.AmazonEnabled && strings.Count(c.AmazonSearchURL, "%s") != 1 {
		return fmt.Errorf("amazon search URL must contain exactly one %%s placeholder, got %q", c.AmazonSearchURL)
	}
	if c.WalmartEnabled && strings.Count(c.WalmartSearchURL, "%s") != 1 {
		return fmt.Errorf("walmart search URL must contain exactly one %%s placeholder, got %q", c.WalmartSearchURL)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
