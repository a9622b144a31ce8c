package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultAddress         = ":4001"
	defaultDriver          = "mongo"
	defaultDatabaseName    = "kasi_listings"
	defaultSearchLimit     = 10
	maxSearchLimit         = 50
	defaultSuggestionLimit = 5
	defaultRequestsPerMin  = 120
	defaultBurst           = 20
	defaultConnectTimeout  = 10 * time.Second
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For
		// header is honoured when identifying clients.
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"server"`
	Database struct {
		Driver          string        `yaml:"driver"`
		URL             string        `yaml:"url"`
		Name            string        `yaml:"name"`
		UsersCollection string        `yaml:"users_collection"`
		EnsureIndexes   bool          `yaml:"ensure_indexes"`
		ConnectTimeout  time.Duration `yaml:"connect_timeout"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Search struct {
		DefaultLimit    int           `yaml:"default_limit"`
		MaxLimit        int           `yaml:"max_limit"`
		SuggestionLimit int           `yaml:"suggestion_limit"`
		Parallel        *bool         `yaml:"parallel"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"search"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// ParallelSearch reports whether per-type queries run concurrently.
func (c Config) ParallelSearch() bool {
	return c.Search.Parallel == nil || *c.Search.Parallel
}

// LoadConfig reads the optional YAML file at path, applies environment
// overrides and fills defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.Server.TrustedProxies = splitList(v)
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("ENSURE_INDEXES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse ENSURE_INDEXES: %w", err)
		}
		cfg.Database.EnsureIndexes = b
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.Redis.DB = *v
	}
	if v, err := readIntEnv("SEARCH_DEFAULT_LIMIT"); err != nil {
		return fmt.Errorf("parse SEARCH_DEFAULT_LIMIT: %w", err)
	} else if v != nil {
		cfg.Search.DefaultLimit = *v
	}
	if v := os.Getenv("SEARCH_PARALLEL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse SEARCH_PARALLEL: %w", err)
		}
		cfg.Search.Parallel = &b
	}
	if v := os.Getenv("SEARCH_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SEARCH_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Search.Timeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	if v, err := readIntEnv("RATE_LIMIT_PER_MINUTE"); err != nil {
		return fmt.Errorf("parse RATE_LIMIT_PER_MINUTE: %w", err)
	} else if v != nil {
		cfg.RateLimit.RequestsPerMinute = *v
	}
	if v, err := readIntEnv("RATE_LIMIT_BURST"); err != nil {
		return fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	} else if v != nil {
		cfg.RateLimit.Burst = *v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultAddress
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = defaultDriver
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = defaultDatabaseName
	}
	if cfg.Database.ConnectTimeout <= 0 {
		cfg.Database.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 35
	}
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = defaultSearchLimit
	}
	if cfg.Search.MaxLimit <= 0 {
		cfg.Search.MaxLimit = maxSearchLimit
	}
	if cfg.Search.SuggestionLimit <= 0 {
		cfg.Search.SuggestionLimit = defaultSuggestionLimit
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = defaultRequestsPerMin
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = defaultBurst
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "mongo", "mysql", "pgx", "postgres":
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	if c.Search.MaxLimit > maxSearchLimit {
		return fmt.Errorf("search.max_limit must be <= %d", maxSearchLimit)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return errors.New("search.default_limit must be <= search.max_limit")
	}
	if c.Search.SuggestionLimit > defaultSuggestionLimit {
		return fmt.Errorf("search.suggestion_limit must be <= %d", defaultSuggestionLimit)
	}
	if _, err := ParseTrustedProxies(c.Server.TrustedProxies); err != nil {
		return err
	}
	return nil
}

// ParseTrustedProxies converts IPs and CIDRs into networks. A bare IP
// becomes a single-host network.
func ParseTrustedProxies(list []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(list))
	for _, entry := range list {
		if strings.Contains(entry, "/") {
			_, n, err := net.ParseCIDR(entry)
			if err != nil {
				return nil, fmt.Errorf("server.trusted_proxies: %w", err)
			}
			nets = append(nets, n)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, fmt.Errorf("server.trusted_proxies: invalid IP %q", entry)
		}
		bits := 128
		if v4 := ip.To4(); v4 != nil {
			ip, bits = v4, 32
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

func readIntEnv(name string) (*int, error) {
	val := os.Getenv(name)
	if val == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
