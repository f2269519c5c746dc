package config

import (
	"strings"
	"testing"
	"time"
)

func validConfigForTest() *Config {
	return &Config{
		Env:                          "development",
		DatabaseDriver:               DatabaseDriverSQLite,
		DatabaseURL:                  "file:dev.db",
		JWTSecret:                    "abcdefghijklmnopqrstuvwxyz123456",
		JWTTTL:                       8 * time.Hour,
		PublicCatalogSource:          CatalogSourceMemory,
		AuthRateLimitPerMin:          30,
		APIRateLimitPerMin:           300,
		AuthAbuseFreeAttempts:        5,
		AuthAbuseBaseDelay:           2 * time.Second,
		AuthAbuseMaxDelay:            5 * time.Minute,
		AuthAbuseResetWindow:         30 * time.Minute,
		ReadinessProbeTimeout:        time.Second,
		ShutdownTimeout:              20 * time.Second,
		ShutdownHTTPDrainTimeout:     10 * time.Second,
		ShutdownObservabilityTimeout: 8 * time.Second,
		OTELTraceSamplingRatio:       1.0,
		OTELMetricsExportInterval:    10 * time.Second,
		OTELLogLevel:                 "info",
	}
}

func TestValidateDevelopmentProfileAllowsRelaxedSettings(t *testing.T) {
	if err := validConfigForTest().Validate(); err != nil {
		t.Fatalf("expected development config to validate, got %v", err)
	}
}

func TestValidateProdProfileStrictRules(t *testing.T) {
	cfg := validConfigForTest()
	cfg.Env = "production"
	cfg.CORSAllowedOrigins = []string{"*"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected strict prod validation errors")
	}
	for _, want := range []string{"sqlite", "PUBLIC_CATALOG_SOURCE", "RATE_LIMIT_REDIS_ENABLED", "CORS_ALLOWED_ORIGINS"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestValidateRejectsShortSecretAndBadTTL(t *testing.T) {
	cfg := validConfigForTest()
	cfg.JWTSecret = "short"
	cfg.JWTTTL = 48 * time.Hour

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") || !strings.Contains(err.Error(), "JWT_TTL") {
		t.Fatalf("expected both jwt errors, got %v", err)
	}
}

func TestValidateBootstrapAdminNeedsPassword(t *testing.T) {
	cfg := validConfigForTest()
	cfg.BootstrapAdminEmail = "admin@example.com"
	cfg.BootstrapAdminPassword = "short"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BOOTSTRAP_ADMIN_PASSWORD") {
		t.Fatalf("expected bootstrap password error, got %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("JWT_SECRET", "abcdefghijklmnopqrstuvwxyz123456")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PUBLIC_CATALOG_SOURCE", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTTTL != 2*time.Hour {
		t.Fatalf("expected ttl 2h, got %s", cfg.JWTTTL)
	}
	if cfg.PublicCatalogSource != CatalogSourceMemory {
		t.Fatalf("expected memory catalog source, got %s", cfg.PublicCatalogSource)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("JWT_SECRET", "abcdefghijklmnopqrstuvwxyz123456")
	t.Setenv("JWT_TTL", "forever")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_TTL") {
		t.Fatalf("expected JWT_TTL parse error, got %v", err)
	}
}
