package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	// Remote ad server
	OxHost     string
	OxBasePath string
	OxPort     int
	OxSSL      bool
	OxTimeout  time.Duration
	OxUsername string
	OxPassword string

	RedisAddr     string
	SessionTTL    time.Duration
	ClickHouseDSN string
	PostgresDSN   string
	MetricsAddr   string
	ServiceName   string
	// SyncInterval is the catalog refresh period of `oxctl serve`; 0 disables it.
	SyncInterval time.Duration
	// Database connection pooling configuration
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration
	// ClickHouse connection pooling configuration
	CHMaxOpenConns    int
	CHMaxIdleConns    int
	CHConnMaxLifetime time.Duration
	CHConnMaxIdleTime time.Duration
	// Tracing configuration
	TracingEnabled    bool
	TempoEndpoint     string
	TracingSampleRate float64
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent.
func Load() Config {
	cfg := Config{}

	cfg.OxHost = getenv("OX_HOST", "localhost")
	cfg.OxBasePath = getenv("OX_BASE_PATH", "/www/api/v2/xmlrpc/")
	// 0 means the scheme's default port
	cfg.OxPort = envInt("OX_PORT", 0)
	cfg.OxSSL = envBool("OX_SSL", false)
	cfg.OxTimeout = envDuration("OX_TIMEOUT", 15*time.Second)
	cfg.OxUsername = getenv("OX_USERNAME", "")
	cfg.OxPassword = getenv("OX_PASSWORD", "")

	cfg.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	cfg.SessionTTL = envDuration("SESSION_TTL", 20*time.Minute)
	cfg.ClickHouseDSN = getenv("CLICKHOUSE_DSN", "clickhouse://default:@localhost:9000/default")
	cfg.PostgresDSN = getenv("POSTGRES_DSN", "postgres://postgres@127.0.0.1:5432/postgres?sslmode=disable")
	cfg.MetricsAddr = getenv("METRICS_ADDR", ":9464")
	cfg.ServiceName = getenv("SERVICE_NAME", "oxclient")
	cfg.SyncInterval = envDuration("SYNC_INTERVAL", 15*time.Minute)

	// Database connection pooling configuration
	cfg.DBMaxOpenConns = envInt("DB_MAX_OPEN_CONNS", 25)
	cfg.DBMaxIdleConns = envInt("DB_MAX_IDLE_CONNS", 5)
	cfg.DBConnMaxLifetime = envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	cfg.DBConnMaxIdleTime = envDuration("DB_CONN_MAX_IDLE_TIME", 1*time.Minute)

	// Statistics exports are batch inserts, so a small pool is enough
	cfg.CHMaxOpenConns = envInt("CH_MAX_OPEN_CONNS", 10)
	cfg.CHMaxIdleConns = envInt("CH_MAX_IDLE_CONNS", 5)
	cfg.CHConnMaxLifetime = envDuration("CH_CONN_MAX_LIFETIME", 5*time.Minute)
	cfg.CHConnMaxIdleTime = envDuration("CH_CONN_MAX_IDLE_TIME", 1*time.Minute)

	// Tracing configuration
	cfg.TracingEnabled = envBool("TRACING_ENABLED", false)
	cfg.TempoEndpoint = getenv("TEMPO_ENDPOINT", "tempo:4317")
	cfg.TracingSampleRate = envFloat("TRACING_SAMPLE_RATE", 1.0)

	return cfg
}

// Endpoint assembles the XML-RPC URL from host, base path, port and scheme.
func (c Config) Endpoint() string {
	scheme := "http"
	if c.OxSSL {
		scheme = "https"
	}
	host := c.OxHost
	if c.OxPort > 0 {
		host = net.JoinHostPort(c.OxHost, strconv.Itoa(c.OxPort))
	}
	path := c.OxBasePath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := url.URL{Scheme: scheme, Host: host, Path: path}
	return u.String()
}

// getenv returns the value of the environment variable if set, otherwise def.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses an environment variable into a time.Duration.
// The value can be a duration string (e.g. "5s") or a number of seconds.
// If the variable is unset or invalid, def is returned.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// envBool parses a boolean environment variable. Accepted values are those
// supported by strconv.ParseBool. When unset or invalid, def is returned.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// envInt parses an integer environment variable. When unset or invalid, def is returned.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// envFloat parses a float64 environment variable. When unset or invalid, def is returned.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}
