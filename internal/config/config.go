package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST           string
	DbPORT           string
	DbUSER           string
	DbPASSWORD       string
	DbNAME           string
	DbSSLMODE        string
	StatementTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	MigrationsPath   string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

// Upstream holds the addresses the gateway proxies to.
type Upstream struct {
	UsersURL string
	PostsURL string
	Timeout  time.Duration
}

type Config struct {
	Service       string
	ServerPort    int
	DB            DB
	MinIO         MinIO
	Upstream      Upstream
	JWTSecretKey  string
	LogMode       string
	MaxUploadSize int64
}

var defaultPorts = map[string]int{
	"users":   4001,
	"posts":   4002,
	"gateway": 5000,
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB(service string) DB {
	return DB{
		DbHOST:           getEnv("DB_HOST", "localhost"),
		DbPORT:           getEnv("DB_PORT", "5432"),
		DbUSER:           getEnv("DB_USER", "postgres"),
		DbPASSWORD:       getEnv("DB_PASSWORD", "password"),
		DbNAME:           getEnv("DB_NAME", "adminpanel"),
		DbSSLMODE:        getEnv("DB_SSLMODE", "disable"),
		StatementTimeout: parseDuration(getEnv("DB_STATEMENT_TIMEOUT", "5s"), 5*time.Second),
		MaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		MigrationsPath:   getEnv("DB_MIGRATIONS_PATH", "migrations/"+service),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		URLExpiry:  parseDuration(getEnv("MINIO_URL_EXPIRY", "300s"), 300*time.Second),
	}
}

func LoadUpstream() Upstream {
	return Upstream{
		UsersURL: strings.TrimRight(getEnv("USERS_SERVICE_URL", "http://localhost:4001"), "/"),
		PostsURL: strings.TrimRight(getEnv("POSTS_SERVICE_URL", "http://localhost:4002"), "/"),
		Timeout:  parseDuration(getEnv("UPSTREAM_TIMEOUT", "5s"), 5*time.Second),
	}
}

// LoadConfig reads .env (if present) and the environment for the named
// service: "users", "posts" or "gateway".
func LoadConfig(service string) *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Service:       service,
		ServerPort:    getEnvAsInt("PORT", defaultPorts[service]),
		DB:            LoadDB(service),
		MinIO:         LoadMinIO(),
		Upstream:      LoadUpstream(),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		LogMode:       getEnv("LOG_MODE", "dev"),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}
