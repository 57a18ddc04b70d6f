package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "ARTIFACT_DIR", "ISSUE_LOG_BACKEND", "ISSUE_LOG_PATH", "RATE_LIMIT_RPS", "ALLOWED_ORIGINS", "KAFKA_BROKER", "KAFKA_ISSUES_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Fatalf("unexpected http addr default: %q", cfg.HTTPAddr)
	}
	if cfg.IssueLogBackend != BackendFile {
		t.Fatalf("unexpected backend default: %q", cfg.IssueLogBackend)
	}
	if cfg.IssueLogPath != "./issues.json" {
		t.Fatalf("unexpected issue log path default: %q", cfg.IssueLogPath)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.KafkaEnabled() {
		t.Fatal("expected kafka to be disabled without a broker")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ISSUE_LOG_BACKEND", "SQLite")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("KAFKA_BROKER", "localhost:29092")
	t.Setenv("KAFKA_ISSUES_TOPIC", "review-issues")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IssueLogBackend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.IssueLogBackend)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPS != 12.5 {
		t.Fatalf("unexpected rate limit: %v", cfg.RateLimitRPS)
	}
	if !cfg.KafkaEnabled() {
		t.Fatal("expected kafka to be enabled")
	}
}

func TestKafkaEnabled(t *testing.T) {
	tests := []struct {
		name   string
		broker string
		topic  string
		want   bool
	}{
		{"broker and topic", "localhost:29092", "review-issues", true},
		{"broker only", "localhost:29092", "", true},
		{"topic only", "", "review-issues", false},
		{"neither", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KAFKA_BROKER", tt.broker)
			t.Setenv("KAFKA_ISSUES_TOPIC", tt.topic)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got := cfg.KafkaEnabled(); got != tt.want {
				t.Fatalf("KafkaEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("ISSUE_LOG_BACKEND", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	t.Setenv("ISSUE_LOG_BACKEND", "file")
	t.Setenv("RATE_LIMIT_RPS", "fast")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid rate limit")
	}
}
