package config

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	AppURL    string `env:"APP_URL,   default=http://localhost:8080"`
	WebRoot   string `env:"WEB_ROOT"`

	// TrustedProxies lists the CIDR ranges allowed to set X-Forwarded-For.
	// Empty means the client address is taken from the connection.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
	proxyRanges    []*net.IPNet

	StoreDriver string `env:"STORE_DRIVER, default=sqlite"`
	SQLite      SQLiteConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Mail        MailConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=office.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=office"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=15m"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL,   default=1h"`
}

type MailConfig struct {
	Workers int `env:"MAIL_WORKERS, default=2"`
}

// IsDevelopment reports whether cookies may be issued without the Secure flag.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// TrustedProxyRanges returns the parsed TRUSTED_PROXIES ranges.
func (c *Config) TrustedProxyRanges() []*net.IPNet {
	return c.proxyRanges
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	switch cfg.StoreDriver {
	case StoreSQLite, StoreMongo:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreSQLite, StoreMongo, cfg.StoreDriver)
	}
	for _, cidr := range cfg.TrustedProxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		cfg.proxyRanges = append(cfg.proxyRanges, ipNet)
	}
	return &cfg, nil
}
