package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// APIConfig configures the catalog API, loadable from environment variables
// (CATALOG_ prefix), flags, or YAML config files.
type APIConfig struct {
	Addr         string   `default:"0.0.0.0:8080" usage:"Catalog API listen address"`
	DatabaseURL  string   `usage:"PostgreSQL connection URL (CATALOG_DATABASE_URL or DATABASE_URL); empty uses the in-memory store" flag:"database-url"`
	SeedFile     string   `usage:"JSON or gzip JSON products loaded into the in-memory store; empty uses the bundled sample" flag:"seed-file"`
	APIKeyPepper string   `env:"API_KEY_PEPPER" usage:"HMAC pepper for API key hashing" flag:"api-key-pepper"`
	APIKeyHashes []string `env:"API_KEY_HASHES" usage:"Hex HMAC-SHA256 hashes of accepted API keys; empty leaves mutations open" flag:"api-key-hashes"`
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// DashboardConfig configures the admin dashboard (DASHBOARD_ prefix).
type DashboardConfig struct {
	Addr           string        `default:"0.0.0.0:3000" usage:"Dashboard listen address"`
	CatalogURL     string        `default:"http://localhost:8080" usage:"Base URL of the catalog API" flag:"catalog-url"`
	CatalogAPIKey  string        `env:"CATALOG_API_KEY" usage:"API key sent on catalog calls" flag:"catalog-api-key"`
	CatalogTimeout time.Duration `default:"0s" usage:"Timeout of one catalog call; 0 disables it" flag:"catalog-timeout"`
	SessionTTL     time.Duration `default:"12h" usage:"Idle lifetime of a dashboard session" flag:"session-ttl"`
	SecureCookies  bool          `default:"false" usage:"Mark session cookies Secure" flag:"secure-cookies"`
	MaxSessions    int           `default:"10000" usage:"Live dashboard sessions kept before the least recently seen is dropped" flag:"max-sessions"`
	RateLimit      RateLimitConfig
	Graceful       GracefulConfig
}

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadAPIConfig loads the catalog API configuration.
func LoadAPIConfig() (*APIConfig, error) {
	return loadAPIConfig(loaderConfig("CATALOG", "catalog"))
}

// LoadDashboardConfig loads the dashboard configuration.
func LoadDashboardConfig() (*DashboardConfig, error) {
	return loadDashboardConfig(loaderConfig("DASHBOARD", "dashboard"))
}

func loaderConfig(prefix, name string) aconfig.Config {
	return aconfig.Config{
		EnvPrefix: prefix,
		Files:     []string{"config.yaml", "/etc/budogu/" + name + ".yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	}
}

func loadAPIConfig(ac aconfig.Config) (*APIConfig, error) {
	var cfg APIConfig
	if err := aconfig.LoaderFor(&cfg, ac).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	cfg.Addr = platformAddr(cfg.Addr, "0.0.0.0:8080")
	return &cfg, nil
}

func loadDashboardConfig(ac aconfig.Config) (*DashboardConfig, error) {
	var cfg DashboardConfig
	if err := aconfig.LoaderFor(&cfg, ac).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.CatalogURL == "" {
		return nil, errors.New("catalog URL is required: set DASHBOARD_CATALOG_URL")
	}
	cfg.Addr = platformAddr(cfg.Addr, "0.0.0.0:3000")
	return &cfg, nil
}

// platformAddr honors the PORT variable set by platforms such as Railway or
// Render when the address was left at its default.
func platformAddr(addr, def string) string {
	if port := os.Getenv("PORT"); port != "" && addr == def {
		return "0.0.0.0:" + port
	}
	return addr
}
