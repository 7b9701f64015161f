package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Common struct {
	Environment    string
	LogLevel       string
	Port           string
	MetricsEnabled bool
	MetricsToken   string
}

type Catalog struct {
	Common
	ContentDir string
}

type Cart struct {
	Common
	CatalogURL  string
	Store       string
	SQLitePath  string
	DatabaseURL string
	SessionIdle time.Duration
}

type Auth struct {
	Common
	JWTSecret   string
	DatabaseURL string
}

type Gateway struct {
	Common
	JWTSecret  string
	AuthURL    string
	CatalogURL string
	CartURL    string

	ContactURL     string
	SubscribeURL   string
	TestimonialURL string
	FormRatePerMin int

	CORSOrigins []string
}

// Cart slot backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

func loadDotEnv() {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()
}

func loadCommon(defaultPort string) Common {
	return Common{
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", defaultPort),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	}
}

func LoadCatalog() Catalog {
	loadDotEnv()
	return Catalog{
		Common:     loadCommon("8082"),
		ContentDir: getEnv("CONTENT_DIR", "content"),
	}
}

func LoadCart() Cart {
	loadDotEnv()
	return Cart{
		Common:      loadCommon("8083"),
		CatalogURL:  getEnv("CATALOG_URL", "http://localhost:8082"),
		Store:       strings.ToLower(getEnv("CART_STORE", StoreMemory)),
		SQLitePath:  getEnv("CART_SQLITE_PATH", "carts.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SessionIdle: getEnvAsDuration("CART_SESSION_IDLE", 30*time.Minute),
	}
}

func LoadAuth() Auth {
	loadDotEnv()
	return Auth{
		Common:      loadCommon("8081"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func LoadGateway() Gateway {
	loadDotEnv()
	return Gateway{
		Common:     loadCommon("8080"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AuthURL:    getEnv("AUTH_URL", "http://auth:8081"),
		CatalogURL: getEnv("CATALOG_URL", "http://catalog:8082"),
		CartURL:    getEnv("CART_URL", "http://cart:8083"),

		ContactURL:     os.Getenv("CONTACT_FORWARD_URL"),
		SubscribeURL:   os.Getenv("SUBSCRIBE_FORWARD_URL"),
		TestimonialURL: os.Getenv("TESTIMONIAL_FORWARD_URL"),
		FormRatePerMin: getEnvAsInt("FORM_RATE_PER_MIN", 10),

		CORSOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func getEnvAsSlice(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
