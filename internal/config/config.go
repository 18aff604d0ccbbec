package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally supplied setting. All values come from the
// environment; Load applies defaults where a local run can work without them.
type Config struct {
	Port string

	OrdersTable   string
	UsersTable    string
	ProductsTable string
	QueueURL      string

	Redis Redis

	Razorpay Razorpay

	JWT JWT
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Razorpay struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

type JWT struct {
	Secret    string
	Issuer    string
	AccessExp time.Duration
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		OrdersTable:   getEnv("ORDERS_TABLE", "orders"),
		UsersTable:    getEnv("USERS_TABLE", "users"),
		ProductsTable: getEnv("PRODUCTS_TABLE", "products"),
		QueueURL:      os.Getenv("ORDER_EVENTS_QUEUE_URL"),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Razorpay: Razorpay{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			BaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		},
		JWT: JWT{
			Secret:    os.Getenv("JWT_SECRET"),
			Issuer:    getEnv("JWT_ISSUER", "storefront"),
			AccessExp: getEnvDuration("JWT_ACCESS_EXP", 24*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
