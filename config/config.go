package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// CascadePolicy controls what happens to job applications when the user,
// job, or company they reference is deleted.
type CascadePolicy string

const (
	CascadeDelete    CascadePolicy = "cascade"   // delete dependent applications
	CascadePreserve  CascadePolicy = "preserve"  // leave applications untouched
	CascadeAnonymize CascadePolicy = "anonymize" // null out the dangling reference
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	// S3-compatible object storage (AWS or Wasabi)
	S3Provider     string
	S3AccessKeyID  string
	S3SecretKey    string
	S3Region       string
	S3Bucket       string
	WasabiEndpoint string
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitGlobalThreshold int
	// Application cascade behavior on account/job deletion
	CascadePolicy CascadePolicy
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "4000"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		S3Provider:     getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:  getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		WasabiEndpoint: getEnv("WASABI_ENDPOINT", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		CascadePolicy: parseCascadePolicy(getEnv("CASCADE_POLICY", string(CascadePreserve))),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will not be verifiable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func parseCascadePolicy(raw string) CascadePolicy {
	switch CascadePolicy(raw) {
	case CascadeDelete, CascadePreserve, CascadeAnonymize:
		return CascadePolicy(raw)
	default:
		log.Printf("WARNING: unknown CASCADE_POLICY %q, falling back to preserve", raw)
		return CascadePreserve
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
