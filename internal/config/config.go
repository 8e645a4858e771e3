package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	Gemini     GeminiConfig
	Validation ValidationConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// KafkaConfig holds Kafka/Redpanda configuration
type KafkaConfig struct {
	Enabled          bool
	Brokers          []string
	TranscriptsTopic string
	ActivitiesTopic  string
	ConsumerGroup    string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// GeminiConfig holds the transcript extractor model settings
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	TopP        float32
	TopK        float32
	Timeout     time.Duration
}

// ValidationConfig holds direction validation settings
type ValidationConfig struct {
	// Institutions overrides the institution list when non-empty
	Institutions     []string
	InstitutionsFile string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8082"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "postgres"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "trader"),
			Password:       getEnv("DB_PASSWORD", "trader5"),
			DBName:         getEnv("DB_NAME", "bond_crm"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "file://./db/migrations"),
		},
		Kafka: KafkaConfig{
			Enabled:          getEnvBool("KAFKA_ENABLED", true),
			Brokers:          splitList(getEnv("KAFKA_BROKERS", "localhost:19092")),
			TranscriptsTopic: getEnv("KAFKA_TRANSCRIPTS_TOPIC", "crm.transcripts"),
			ActivitiesTopic:  getEnv("KAFKA_ACTIVITIES_TOPIC", "crm.activities"),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", "bond-crm-service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 24*time.Hour),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature: getEnvFloat32("GEMINI_TEMPERATURE", 0.2),
			TopP:        getEnvFloat32("GEMINI_TOP_P", 0.8),
			TopK:        getEnvFloat32("GEMINI_TOP_K", 10),
			Timeout:     getEnvDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Validation: ValidationConfig{
			Institutions:     splitList(getEnv("INSTITUTIONS", "")),
			InstitutionsFile: getEnv("INSTITUTIONS_FILE", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

// Address returns the Redis address in host:port format
func (r *RedisConfig) Address() string {
	return r.Host + ":" + r.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat32(key string, defaultValue float32) float32 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 32); err == nil {
		return float32(v)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// splitList splits a comma-separated list, dropping blanks
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
