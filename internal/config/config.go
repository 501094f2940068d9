package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	LocationStatic = "static"
	LocationIPAPI  = "ipapi"
)

type Config struct {
	Port      string
	LogLevel  string
	LogPretty bool

	StoreDriver string
	DBPath      string
	DatabaseURL string
	RedisURL    string

	HospitalCacheTTL time.Duration
	GuidanceCacheTTL time.Duration

	HospitalAPIURL   string
	GuidanceAPIURL   string
	GoogleMapsAPIKey string

	SMSGatewayURL   string
	SMSGatewayToken string

	LocationSource string
	LocationLat    string
	LocationLng    string
	IPAPIURL       string

	GuidanceTimeout time.Duration
	HomeTimeout     time.Duration
	SessionIdleTTL  time.Duration
}

// LoadDotEnv reads .env into the process environment when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}
}

// Load builds the configuration from the environment. Call LoadDotEnv first
// to pick up a local .env file.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStore is Load for tools that only touch the store; remote API settings
// are read but not required.
func LoadStore() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() (*Config, error) {
	cfg := &Config{
		Port:      Get("PORT", "8080"),
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogPretty: GetBool("LOG_PRETTY", false),

		StoreDriver: strings.ToLower(Get("STORE_DRIVER", StoreSQLite)),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		HospitalAPIURL:   strings.TrimRight(os.Getenv("HOSPITAL_API_URL"), "/"),
		GuidanceAPIURL:   strings.TrimRight(Get("GUIDANCE_API_URL", "https://emergency-response-application.onrender.com"), "/"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),

		SMSGatewayURL:   os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewayToken: os.Getenv("SMS_GATEWAY_TOKEN"),

		LocationSource: strings.ToLower(Get("LOCATION_SOURCE", LocationStatic)),
		LocationLat:    os.Getenv("LOCATION_LAT"),
		LocationLng:    os.Getenv("LOCATION_LNG"),
		IPAPIURL:       Get("IPAPI_URL", "http://ip-api.com/json"),
	}

	var err error
	if cfg.HospitalCacheTTL, err = GetDuration("CACHE_TTL_HOSPITALS", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.GuidanceCacheTTL, err = GetDuration("CACHE_TTL_GUIDANCE", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.GuidanceTimeout, err = GetDuration("GUIDANCE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.HomeTimeout, err = GetDuration("HOME_TIMEOUT", 8*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = GetDuration("SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.ValidateStore(); err != nil {
		return err
	}

	switch c.LocationSource {
	case LocationStatic, LocationIPAPI:
	default:
		return fmt.Errorf("config: LOCATION_SOURCE must be static or ipapi, got %q", c.LocationSource)
	}

	if c.HospitalAPIURL == "" && c.GoogleMapsAPIKey == "" {
		return errors.New("config: either HOSPITAL_API_URL or GOOGLE_MAPS_API_KEY is required for hospital search")
	}

	if c.GuidanceTimeout <= 0 {
		return errors.New("config: GUIDANCE_TIMEOUT must be positive")
	}
	if c.HomeTimeout <= 0 {
		return errors.New("config: HOME_TIMEOUT must be positive")
	}
	if c.SessionIdleTTL <= 0 {
		return errors.New("config: SESSION_IDLE_TTL must be positive")
	}

	return nil
}

func (c *Config) ValidateStore() error {
	switch c.StoreDriver {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("config: DB_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL is required for the postgres store")
		}
	case StoreRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return errors.New("config: REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("config: STORE_DRIVER must be sqlite, postgres or redis, got %q", c.StoreDriver)
	}
	return nil
}

// StaticLocation parses LOCATION_LAT/LOCATION_LNG. ok is false when either is unset.
func (c *Config) StaticLocation() (lat, lng float64, ok bool, err error) {
	if strings.TrimSpace(c.LocationLat) == "" || strings.TrimSpace(c.LocationLng) == "" {
		return 0, 0, false, nil
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(c.LocationLat), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("config: LOCATION_LAT: %w", err)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(c.LocationLng), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("config: LOCATION_LNG: %w", err)
	}
	return lat, lng, true, nil
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
