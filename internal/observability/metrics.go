package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/exemplar"
	"go.opentelemetry.io/otel/sdk/resource"
)

const meterName = "storefront-admin-api"

type AppMetrics struct {
	queryCounter          metric.Int64Counter
	queryDuration         metric.Float64Histogram
	queryPageSize         metric.Float64Histogram
	mutationCounter       metric.Int64Counter
	repositoryCounter     metric.Int64Counter
	authLoginCounter      metric.Int64Counter
	tokenValidation       metric.Int64Counter
	loginGuardCounter     metric.Int64Counter
	rateLimitDecisions    metric.Int64Counter
	rateLimitRetryAfter   metric.Float64Histogram
	middlewareEvents      metric.Int64Counter
	healthCheckResults    metric.Int64Counter
	healthCheckDuration   metric.Float64Histogram
	redisCommandCounter   metric.Int64Counter
	redisCommandDuration  metric.Float64Histogram
	databaseStartupEvents metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.OTELEnvironment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))),
		sdkmetric.WithExemplarFilter(exemplar.TraceBasedFilter),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "catalog.query.duration"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
				},
			},
		)),
	)
	otel.SetMeterProvider(mp)

	m, err := newAppMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, err
	}
	setAppMetrics(m)

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	m := &AppMetrics{}
	counters := []struct {
		name string
		desc string
		dst  *metric.Int64Counter
	}{
		{"catalog.query.requests", "Catalog list and lookup operations", &m.queryCounter},
		{"catalog.mutation.requests", "Catalog create, update and delete operations", &m.mutationCounter},
		{"catalog.repository.operations", "Backing store operations", &m.repositoryCounter},
		{"auth.login.attempts", "Admin login attempts", &m.authLoginCounter},
		{"auth.token.validations", "Bearer token validations", &m.tokenValidation},
		{"auth.login_guard.events", "Login abuse guard decisions", &m.loginGuardCounter},
		{"http.rate_limit.decisions", "Rate limiter decisions", &m.rateLimitDecisions},
		{"http.middleware.events", "Middleware validation events", &m.middlewareEvents},
		{"health.check.results", "Readiness check outcomes", &m.healthCheckResults},
		{"redis.commands", "Redis commands issued", &m.redisCommandCounter},
		{"database.startup.events", "Migration and seed outcomes", &m.databaseStartupEvents},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	histograms := []struct {
		name string
		unit string
		desc string
		dst  *metric.Float64Histogram
	}{
		{"catalog.query.duration", "s", "Duration of catalog queries in seconds", &m.queryDuration},
		{"catalog.query.page_size", "", "Requested page size for list queries", &m.queryPageSize},
		{"http.rate_limit.retry_after", "s", "Retry-after duration for throttled requests", &m.rateLimitRetryAfter},
		{"health.check.duration", "s", "Duration of readiness checks in seconds", &m.healthCheckDuration},
		{"redis.command.duration", "s", "Duration of redis commands in seconds", &m.redisCommandDuration},
	}
	for _, h := range histograms {
		opts := []metric.Float64HistogramOption{metric.WithDescription(h.desc)}
		if h.unit != "" {
			opts = append(opts, metric.WithUnit(h.unit))
		}
		hist, err := meter.Float64Histogram(h.name, opts...)
		if err != nil {
			return nil, err
		}
		*h.dst = hist
	}
	return m, nil
}

func setAppMetrics(m *AppMetrics) {
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()
}

func currentMetrics() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

func RecordQuery(ctx context.Context, resource, operation, outcome string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.queryCounter.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, duration.Seconds(), attrs)
}

func RecordQueryPageSize(ctx context.Context, resource string, limit int) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.queryPageSize.Record(ctx, float64(limit), metric.WithAttributes(attribute.String("resource", resource)))
}

func RecordMutation(ctx context.Context, resource, action, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.mutationCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

func RecordRepositoryOperation(ctx context.Context, resource, operation, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.repositoryCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordAuthLogin(ctx context.Context, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.authLoginCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordTokenValidation(ctx context.Context, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.tokenValidation.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordLoginGuardEvent(ctx context.Context, action, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.loginGuardCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

func RecordRateLimitDecision(ctx context.Context, scope, outcome, mode string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.rateLimitDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("outcome", outcome),
		attribute.String("mode", mode),
	))
}

func RecordRateLimitRetryAfter(ctx context.Context, scope string, retryAfter time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.rateLimitRetryAfter.Record(ctx, retryAfter.Seconds(), metric.WithAttributes(attribute.String("scope", scope)))
}

func RecordMiddlewareValidationEvent(ctx context.Context, middleware, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.middlewareEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("middleware", middleware),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheck(ctx context.Context, check, outcome string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.healthCheckResults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	))
	m.healthCheckDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("check", check)))
}

func RecordRedisCommand(ctx context.Context, command, status string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	)
	m.redisCommandCounter.Add(ctx, 1, attrs)
	m.redisCommandDuration.Record(ctx, duration.Seconds(), attrs)
}

func RecordDatabaseStartupEvent(ctx context.Context, phase, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.databaseStartupEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("phase", phase),
		attribute.String("outcome", outcome),
	))
}
