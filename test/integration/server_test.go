package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/config"
	"github.com/sandeepkv93/storefront-admin-api/internal/database"
	"github.com/sandeepkv93/storefront-admin-api/internal/health"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/client"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/handler"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/router"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/security"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

const (
	adminEmail    = "ops@example.com"
	adminPassword = "Catalog#Admin2026"
)

type testServer struct {
	URL string
	DB  *gorm.DB
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total   int64 `json:"total"`
		Limit   int   `json:"limit"`
		Offset  int   `json:"offset"`
		HasMore bool  `json:"has_more"`
	} `json:"pagination"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestServer serves the full router over a fresh sqlite database seeded
// with the default categories and one admin account.
func newTestServer(t *testing.T, override func(cfg *config.Config)) *testServer {
	t.Helper()
	cfg := &config.Config{
		DatabaseDriver:        config.DatabaseDriverSQLite,
		DatabaseURL:           fmt.Sprintf("file:%s", filepath.Join(t.TempDir(), "catalog.db")),
		JWTIssuer:             "storefront-test",
		JWTAudience:           "storefront-admin",
		JWTSecret:             "abcdefghijklmnopqrstuvwxyz123456",
		JWTTTL:                time.Hour,
		CORSAllowedOrigins:    []string{"http://localhost:3000"},
		AuthRateLimitPerMin:   100,
		APIRateLimitPerMin:    1000,
		AuthAbuseFreeAttempts: 5,
		AuthAbuseBaseDelay:    time.Second,
		AuthAbuseMaxDelay:     time.Minute,
		AuthAbuseResetWindow:  time.Hour,
		ReadinessProbeTimeout: time.Second,
		PublicCatalogSource:   config.CatalogSourceDB,
	}
	if override != nil {
		override(cfg)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := database.Seed(context.Background(), db, database.SeedOptions{AdminEmail: adminEmail, AdminPassword: adminPassword}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tokens := security.NewTokenManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret, cfg.JWTTTL)
	guard := service.NewInMemoryLoginGuard(service.LoginGuardPolicy{
		FreeAttempts: cfg.AuthAbuseFreeAttempts,
		BaseDelay:    cfg.AuthAbuseBaseDelay,
		Multiplier:   2,
		MaxDelay:     cfg.AuthAbuseMaxDelay,
		ResetWindow:  cfg.AuthAbuseResetWindow,
	})

	blogs := repository.NewBlogRepository(db)
	products := repository.NewProductRepository(db)
	partners := repository.NewPartnerRepository(db)
	customers := repository.NewCustomerRepository(db)
	var publicBlogs repository.BlogReader = blogs
	var publicPartners repository.PartnerReader = partners
	if cfg.PublicCatalogSource == config.CatalogSourceMemory {
		publicBlogs = repository.NewMemoryBlogStore(repository.FixtureBlogs(time.Now().UTC()))
		publicPartners = repository.NewMonthlyPartnerStore(time.Now)
	}

	h := router.NewRouter(router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(service.NewAuthService(repository.NewAdminUserRepository(db), tokens, guard)),
		BlogHandler:      handler.NewBlogHandler(service.NewBlogService(blogs, publicBlogs)),
		CategoryHandler:  handler.NewCategoryHandler(service.NewCategoryService(repository.NewCategoryRepository(db))),
		ProductHandler:   handler.NewProductHandler(service.NewProductService(products)),
		PartnerHandler:   handler.NewPartnerHandler(service.NewPartnerService(partners, publicPartners)),
		CouponHandler:    handler.NewCouponHandler(service.NewCouponService(repository.NewCouponRepository(db))),
		OrderHandler:     handler.NewOrderHandler(service.NewOrderService(repository.NewOrderRepository(db))),
		ReviewHandler:    handler.NewReviewHandler(service.NewReviewService(repository.NewReviewRepository(db), products, customers)),
		CustomerHandler:  handler.NewCustomerHandler(service.NewCustomerService(customers)),
		DashboardHandler: handler.NewDashboardHandler(service.NewDashboardService(repository.NewStatsRepository(db), service.NewInMemoryStatsCache(), cfg.DashboardCacheTTL)),
		HealthHandler:    handler.NewHealthHandler(health.NewProbeRunner(cfg.ReadinessProbeTimeout, 0, health.NewDBChecker(db))),
		TokenVerifier:    tokens,
		CORSOrigins:      cfg.CORSAllowedOrigins,
		AuthRateLimitRPM: cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:  cfg.APIRateLimitPerMin,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testServer{URL: srv.URL, DB: db}
}

// adminClient logs in lazily through the re-authentication path.
func (s *testServer) adminClient() *client.Client {
	return client.New(s.URL, client.WithCredentials(adminEmail, adminPassword))
}

func doRaw(t *testing.T, method, url, token, body string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, url, err)
	}
	return resp, env
}

func expectAPIError(t *testing.T, err error, status int, code, message string) {
	t.Helper()
	apiErr, ok := err.(*client.Error)
	if !ok {
		t.Fatalf("expected *client.Error, got %T: %v", err, err)
	}
	if apiErr.Status != status || apiErr.Code != code || apiErr.Message != message {
		t.Fatalf("expected %d %s %q, got %d %s %q", status, code, message, apiErr.Status, apiErr.Code, apiErr.Message)
	}
}
