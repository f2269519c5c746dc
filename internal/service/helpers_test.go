package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

func newServiceDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// countingStore wraps a store and counts every call that reaches it.
type countingStore[T any] struct {
	repository.Store[T]
	calls int
}

func (s *countingStore[T]) Create(ctx context.Context, rec *T) error {
	s.calls++
	return s.Store.Create(ctx, rec)
}

func (s *countingStore[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	s.calls++
	return s.Store.FindByID(ctx, id)
}

func (s *countingStore[T]) UpdateColumns(ctx context.Context, id uint, columns []string, rec *T) error {
	s.calls++
	return s.Store.UpdateColumns(ctx, id, columns, rec)
}

func (s *countingStore[T]) DeleteByID(ctx context.Context, id uint) error {
	s.calls++
	return s.Store.DeleteByID(ctx, id)
}

func payloadForTest(t *testing.T, raw string) Payload {
	t.Helper()
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return p
}
