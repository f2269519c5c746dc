package di

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/config"
	"github.com/sandeepkv93/storefront-admin-api/internal/database"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

// AdminAccounts creates or resets admin logins from the command line.
type AdminAccounts interface {
	EnsureAdmin(ctx context.Context, email, name, password string) (*domain.AdminUser, bool, error)
}

type TableState struct {
	Name    string
	Present bool
}

// Maintenance carries the database operations of the migrate and seed tools.
type Maintenance struct {
	Config *config.Config
	db     *gorm.DB
	admins AdminAccounts
}

func NewMaintenance(cfg *config.Config, db *gorm.DB, admins AdminAccounts) *Maintenance {
	return &Maintenance{Config: cfg, db: db, admins: admins}
}

func provideAdminAccounts(users repository.AdminUserRepository) AdminAccounts {
	return service.NewAuthService(users, nil, nil)
}

func (m *Maintenance) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate applies the schema and returns the managed table names.
func (m *Maintenance) Migrate() ([]string, error) {
	if err := database.Migrate(m.db); err != nil {
		return nil, err
	}
	return database.ModelNames(m.db), nil
}

func (m *Maintenance) Tables() []TableState {
	names := database.ModelNames(m.db)
	states := make([]TableState, 0, len(names))
	for _, name := range names {
		states = append(states, TableState{Name: name, Present: m.db.Migrator().HasTable(name)})
	}
	return states
}

// SeedOptions are the defaults taken from configuration.
func (m *Maintenance) SeedOptions() database.SeedOptions {
	return seedOptions(m.Config)
}

func (m *Maintenance) Seed(ctx context.Context, opts database.SeedOptions) (*database.SeedReport, error) {
	return database.Seed(ctx, m.db, opts)
}

func (m *Maintenance) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.AdminUser, bool, error) {
	return m.admins.EnsureAdmin(ctx, email, name, password)
}

func (m *Maintenance) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
