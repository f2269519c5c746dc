package di

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/app"
	"github.com/sandeepkv93/storefront-admin-api/internal/config"
	"github.com/sandeepkv93/storefront-admin-api/internal/database"
	"github.com/sandeepkv93/storefront-admin-api/internal/health"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/handler"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/middleware"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/router"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/security"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewAdminUserRepository,
	repository.NewBlogRepository,
	repository.NewCategoryRepository,
	repository.NewProductRepository,
	repository.NewPartnerRepository,
	repository.NewOrderRepository,
	repository.NewReviewRepository,
	repository.NewCouponRepository,
	repository.NewCustomerRepository,
	repository.NewStatsRepository,
	wire.Bind(new(repository.AdminUserRepository), new(*repository.GormAdminUserRepository)),
	wire.Bind(new(repository.BlogRepository), new(*repository.GormBlogRepository)),
	wire.Bind(new(repository.CategoryRepository), new(*repository.GormCategoryRepository)),
	wire.Bind(new(repository.ProductRepository), new(*repository.GormProductRepository)),
	wire.Bind(new(repository.PartnerRepository), new(*repository.GormPartnerRepository)),
	wire.Bind(new(repository.OrderRepository), new(*repository.GormOrderRepository)),
	wire.Bind(new(repository.ReviewRepository), new(*repository.GormReviewRepository)),
	wire.Bind(new(repository.CouponRepository), new(*repository.GormCouponRepository)),
	wire.Bind(new(repository.CustomerRepository), new(*repository.GormCustomerRepository)),
	wire.Bind(new(repository.StatsRepository), new(*repository.GormStatsRepository)),
	providePublicBlogReader,
	providePublicPartnerReader,
)

var SecuritySet = wire.NewSet(
	provideTokenManager,
	wire.Bind(new(service.TokenIssuer), new(*security.TokenManager)),
	wire.Bind(new(middleware.TokenVerifier), new(*security.TokenManager)),
)

var ServiceSet = wire.NewSet(
	provideLoginGuard,
	provideStatsCache,
	service.NewAuthService,
	service.NewBlogService,
	service.NewCategoryService,
	service.NewProductService,
	service.NewPartnerService,
	service.NewOrderService,
	service.NewReviewService,
	service.NewCouponService,
	service.NewCustomerService,
	provideDashboardService,
	wire.Bind(new(service.AuthService), new(*service.AuthServiceImpl)),
	wire.Bind(new(service.BlogService), new(*service.BlogServiceImpl)),
	wire.Bind(new(service.CategoryService), new(*service.CategoryServiceImpl)),
	wire.Bind(new(service.ProductService), new(*service.ProductServiceImpl)),
	wire.Bind(new(service.PartnerService), new(*service.PartnerServiceImpl)),
	wire.Bind(new(service.OrderService), new(*service.OrderServiceImpl)),
	wire.Bind(new(service.ReviewService), new(*service.ReviewServiceImpl)),
	wire.Bind(new(service.CouponService), new(*service.CouponServiceImpl)),
	wire.Bind(new(service.CustomerService), new(*service.CustomerServiceImpl)),
	wire.Bind(new(service.DashboardService), new(*service.DashboardServiceImpl)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewBlogHandler,
	handler.NewCategoryHandler,
	handler.NewProductHandler,
	handler.NewPartnerHandler,
	handler.NewCouponHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewCustomerHandler,
	handler.NewDashboardHandler,
	provideHealthHandler,
	provideGlobalRateLimiter,
	provideAuthRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(provideApp)

// MaintenanceSet backs the migrate and seed tools. The database is opened
// without migrating so the tools decide what runs.
var MaintenanceSet = wire.NewSet(
	provideOpenDB,
	repository.NewAdminUserRepository,
	wire.Bind(new(repository.AdminUserRepository), new(*repository.GormAdminUserRepository)),
	provideAdminAccounts,
	NewMaintenance,
)

func seedOptions(cfg *config.Config) database.SeedOptions {
	return database.SeedOptions{
		AdminEmail:    cfg.BootstrapAdminEmail,
		AdminPassword: cfg.BootstrapAdminPassword,
		SampleContent: !cfg.IsProduction(),
	}
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if _, err := database.Seed(context.Background(), db, seedOptions(cfg)); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	if !cfg.RateLimitRedisEnabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	observability.InstrumentRedisClient(client)
	return client
}

func provideTokenManager(cfg *config.Config) *security.TokenManager {
	return security.NewTokenManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret, cfg.JWTTTL)
}

func providePublicBlogReader(cfg *config.Config, repo *repository.GormBlogRepository) repository.BlogReader {
	if cfg.PublicCatalogSource == config.CatalogSourceMemory {
		return repository.NewMemoryBlogStore(repository.FixtureBlogs(time.Now().UTC()))
	}
	return repo
}

func providePublicPartnerReader(cfg *config.Config, repo *repository.GormPartnerRepository) repository.PartnerReader {
	if cfg.PublicCatalogSource == config.CatalogSourceMemory {
		return repository.NewMonthlyPartnerStore(time.Now)
	}
	return repo
}

func provideLoginGuard(cfg *config.Config, redisClient redis.UniversalClient) service.LoginGuard {
	policy := service.LoginGuardPolicy{
		FreeAttempts: cfg.AuthAbuseFreeAttempts,
		BaseDelay:    cfg.AuthAbuseBaseDelay,
		Multiplier:   2,
		MaxDelay:     cfg.AuthAbuseMaxDelay,
		ResetWindow:  cfg.AuthAbuseResetWindow,
	}
	if redisClient != nil {
		return service.NewRedisLoginGuard(redisClient, cfg.RateLimitRedisPrefix+":login", policy)
	}
	return service.NewInMemoryLoginGuard(policy)
}

func provideStatsCache(cfg *config.Config, redisClient redis.UniversalClient) service.StatsCache {
	if cfg.DashboardCacheTTL <= 0 {
		return service.NewNoopStatsCache()
	}
	if redisClient != nil {
		return service.NewRedisStatsCache(redisClient, cfg.RateLimitRedisPrefix+":cache")
	}
	return service.NewInMemoryStatsCache()
}

func provideDashboardService(cfg *config.Config, stats repository.StatsRepository, cache service.StatsCache) *service.DashboardServiceImpl {
	return service.NewDashboardService(stats, cache, cfg.DashboardCacheTTL)
}

func provideHealthHandler(readiness *health.ProbeRunner) *handler.HealthHandler {
	return handler.NewHealthHandler(readiness)
}

func provideGlobalRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.GlobalRateLimiterFunc {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":api")
		return middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.APIRateLimitPerMin,
			time.Minute,
			middleware.FailOpen,
			"api",
		).Middleware()
	}
	return middleware.NewRateLimiter(cfg.APIRateLimitPerMin, time.Minute, "api").Middleware()
}

func provideAuthRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.AuthRateLimiterFunc {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":auth")
		return middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.AuthRateLimitPerMin,
			time.Minute,
			middleware.FailClosed,
			"auth",
		).Middleware()
	}
	return middleware.NewRateLimiter(cfg.AuthRateLimitPerMin, time.Minute, "auth").Middleware()
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	partnerHandler *handler.PartnerHandler,
	couponHandler *handler.CouponHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	customerHandler *handler.CustomerHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
	verifier middleware.TokenVerifier,
	globalRateLimiter router.GlobalRateLimiterFunc,
	authRateLimiter router.AuthRateLimiterFunc,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:       authHandler,
		BlogHandler:       blogHandler,
		CategoryHandler:   categoryHandler,
		ProductHandler:    productHandler,
		PartnerHandler:    partnerHandler,
		CouponHandler:     couponHandler,
		OrderHandler:      orderHandler,
		ReviewHandler:     reviewHandler,
		CustomerHandler:   customerHandler,
		DashboardHandler:  dashboardHandler,
		HealthHandler:     healthHandler,
		TokenVerifier:     verifier,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		AuthRateLimitRPM:  cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		GlobalRateLimiter: globalRateLimiter,
		AuthRateLimiter:   authRateLimiter,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	return health.NewProbeRunner(
		cfg.ReadinessProbeTimeout,
		cfg.ReadinessStartGracePeriod,
		health.NewDBChecker(db),
		health.NewRedisChecker(redisClient),
	)
}

func provideApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
) *app.App {
	return app.New(cfg, logger, server, runtime, db, redisClient)
}
