//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/sandeepkv93/storefront-admin-api/internal/app"
)

// InitializeApp builds the API server with its storage, cache, limiter and
// telemetry dependencies.
func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		RuntimeInfraSet,
		RepositorySet,
		SecuritySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	))
}

// InitializeMaintenance builds the handle used by cmd/migrate and cmd/seed.
func InitializeMaintenance() (*Maintenance, error) {
	panic(wire.Build(
		ConfigSet,
		MaintenanceSet,
	))
}
