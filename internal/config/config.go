package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is only acceptable outside production.
const DevJWTSecret = "dev-only-insecure-jwt-secret"

type Config struct {
	Env  string
	Port string

	DatabaseDriver  string
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	GoogleClientID string
	CORSOrigins    []string

	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration

	NatsURL string

	EmailAPIKey string
	EmailSender string

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
}

// LoadDotenv loads the first .env found in the working directory or its parents.
// A missing file is not an error; the environment is used as is.
func LoadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				log.Printf("[env] failed to load %s: %v", p, err)
				return
			}
			log.Println("[env] loaded", p)
			return
		}
	}
	log.Println("[env] no .env file found, using environment variables")
}

func Load() *Config {
	return &Config{
		Env:  GetEnvAsString("APP_ENV", "development"),
		Port: GetEnvAsString("PORT", "5000"),

		DatabaseDriver:  GetEnvAsString("DB_DRIVER", "postgres"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MaxOpenConns:    GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: GetEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		LogSQL:          GetEnvAsBool("DB_LOG_SQL", false),

		JWTSecret:  GetEnvAsString("JWT_SECRET", DevJWTSecret),
		TokenTTL:   GetEnvAsDuration("JWT_TTL", 7*24*time.Hour),
		BcryptCost: GetEnvAsInt("BCRYPT_COST", 10),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		CORSOrigins: GetEnvAsList("CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RedisURL:        os.Getenv("REDIS_URL"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         GetEnvAsInt("REDIS_DB", 0),
		ProfileCacheTTL: GetEnvAsDuration("PROFILE_CACHE_TTL", 15*time.Minute),

		NatsURL: os.Getenv("NATS_URL"),

		EmailAPIKey: os.Getenv("EMAIL_API_KEY"),
		EmailSender: os.Getenv("EMAIL_SENDER"),

		RateLimitRPS:   GetEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: GetEnvAsInt("RATE_LIMIT_BURST", 20),

		ShutdownTimeout: GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate refuses configurations that must never reach production.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.IsProduction() {
		if c.JWTSecret == DevJWTSecret {
			return errors.New("JWT_SECRET must be set in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 bytes in production")
		}
	} else if c.JWTSecret == DevJWTSecret {
		log.Println("[config] WARNING: using the development JWT secret; set JWT_SECRET")
	}
	if c.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}
