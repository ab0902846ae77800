package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string `yaml:"app_env"`
	HTTPAddr    string `yaml:"http_addr"`
	MetricsAddr string `yaml:"metrics_addr"`

	APIBaseURL string        `yaml:"api_base_url"`
	APIRPS     int           `yaml:"api_rps"`
	APITimeout time.Duration `yaml:"api_timeout"`

	RedisAddr  string        `yaml:"redis_addr"` // empty keeps the session in memory
	RedisPass  string        `yaml:"redis_password"`
	RedisDB    int           `yaml:"redis_db"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	MySQLDSN string `yaml:"mysql_dsn"` // empty disables the audit trail

	DeleteResync time.Duration `yaml:"delete_resync"`

	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func Defaults() Config {
	return Config{
		AppEnv:       "prod",
		HTTPAddr:     ":8080",
		MetricsAddr:  ":9100",
		APIBaseURL:   "http://localhost:5000/api",
		APIRPS:       10,
		APITimeout:   20 * time.Second,
		SessionTTL:   24 * time.Hour,
		DeleteResync: 100 * time.Millisecond,
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE if any, then environment variables.
func Load() Config {
	c := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &c); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config file ignored")
		}
	}
	applyEnv(&c)
	if c.APIBaseURL == "" {
		log.Warn().Msg("API_BASE_URL is empty")
	}
	return c
}

func loadFile(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(c *Config) {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	// dur reads k in whole units; an unset or invalid k keeps def untouched.
	dur := func(k string, def, unit time.Duration) time.Duration {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
			return def
		}
		return time.Duration(n) * unit
	}

	c.AppEnv = env("APP_ENV", c.AppEnv)
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.MetricsAddr = env("METRICS_ADDR", c.MetricsAddr)
	c.APIBaseURL = env("API_BASE_URL", c.APIBaseURL)
	c.APIRPS = atoi("API_RPS", c.APIRPS)
	c.APITimeout = dur("API_TIMEOUT_SECONDS", c.APITimeout, time.Second)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPass = env("REDIS_PASSWORD", c.RedisPass)
	c.RedisDB = atoi("REDIS_DB", c.RedisDB)
	c.SessionTTL = dur("SESSION_TTL_SECONDS", c.SessionTTL, time.Second)
	c.MySQLDSN = env("MYSQL_DSN", c.MySQLDSN)
	c.DeleteResync = dur("DELETE_RESYNC_MS", c.DeleteResync, time.Millisecond)
	c.AdminEmail = env("ADMIN_EMAIL", c.AdminEmail)
	c.AdminPassword = env("ADMIN_PASSWORD", c.AdminPassword)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
