package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
	BackendValkey   = "valkey"
)

// Config holds the serving-side settings. Training hyperparameters live in
// the YAML training config instead.
type Config struct {
	HTTPAddr       string
	AllowedOrigins []string
	RateLimitRPS   float64

	ArtifactDir   string
	ArtifactS3URI string

	IssueLogBackend string
	IssueLogPath    string
	SQLitePath      string
	IssueLogTable   string
	IssueLogKey     string

	AWSRegion   string
	AWSEndpoint string

	KafkaBroker      string
	KafkaIssuesTopic string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":5000"),
		ArtifactDir:      getEnv("ARTIFACT_DIR", "./artifacts"),
		ArtifactS3URI:    os.Getenv("ARTIFACT_S3_URI"),
		IssueLogBackend:  strings.ToLower(getEnv("ISSUE_LOG_BACKEND", BackendFile)),
		IssueLogPath:     getEnv("ISSUE_LOG_PATH", "./issues.json"),
		SQLitePath:       getEnv("SQLITE_PATH", "./reviewlens.db"),
		IssueLogTable:    getEnv("ISSUE_LOG_TABLE", "ReviewIssues"),
		IssueLogKey:      getEnv("ISSUE_LOG_KEY", "reviewlens:issues"),
		AWSRegion:        getEnv("AWS_REGION", "us-west-2"),
		AWSEndpoint:      os.Getenv("AWS_ENDPOINT"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		KafkaIssuesTopic: os.Getenv("KAFKA_ISSUES_TOPIC"),
	}

	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	rps := getEnv("RATE_LIMIT_RPS", "0")
	parsed, err := strconv.ParseFloat(rps, 64)
	if err != nil || parsed < 0 {
		return cfg, fmt.Errorf("[Config] invalid RATE_LIMIT_RPS %q", rps)
	}
	cfg.RateLimitRPS = parsed

	switch cfg.IssueLogBackend {
	case BackendFile, BackendSQLite, BackendDynamoDB, BackendValkey:
	default:
		return cfg, fmt.Errorf("[Config] ISSUE_LOG_BACKEND must be one of file, sqlite, dynamodb, valkey, got %q", cfg.IssueLogBackend)
	}

	return cfg, nil
}

// KafkaEnabled reports whether flagged reviews should also be published.
// An empty topic falls back to the producer's default topic.
func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}
