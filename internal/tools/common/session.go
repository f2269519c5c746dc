package common

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/storefront-admin-api/internal/di"
)

// Session opens the maintenance handle as the first step of a tool run so
// the connection attempt is reported like any other step.
type Session struct {
	EnvFile     string
	Maintenance *di.Maintenance

	open func() (*di.Maintenance, error)
}

func NewSession(envFile string) *Session {
	return &Session{EnvFile: envFile, open: di.InitializeMaintenance}
}

func (s *Session) Connect() Step {
	return Step{Name: "connect", Run: func(ctx context.Context) (string, error) {
		if _, err := LoadEnvFile(s.EnvFile); err != nil {
			return "", err
		}
		m, err := s.open()
		if err != nil {
			return "", err
		}
		s.Maintenance = m
		if err := m.Ping(ctx); err != nil {
			return "", fmt.Errorf("db ping: %w", err)
		}
		return fmt.Sprintf("%s database reachable (%s)", m.Config.DatabaseDriver, m.Config.Env), nil
	}}
}

func (s *Session) Close() {
	if s.Maintenance != nil {
		_ = s.Maintenance.Close()
	}
}
