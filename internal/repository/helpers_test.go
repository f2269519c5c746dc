package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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

func boolPtr(v bool) *bool { return &v }

func seedBlogsForTest(t *testing.T, repo *GormBlogRepository, n int) []*domain.Blog {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*domain.Blog, 0, n)
	for i := 0; i < n; i++ {
		b := &domain.Blog{
			Base:   domain.Base{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			Title:  fmt.Sprintf("Post %02d", i),
			Slug:   fmt.Sprintf("post-%02d", i),
			Author: "Ada",
			Status: domain.BlogStatusPublished,
		}
		if i%5 == 0 {
			b.Status = domain.BlogStatusDraft
		}
		if err := repo.Create(t.Context(), b); err != nil {
			t.Fatalf("create blog %d: %v", i, err)
		}
		out = append(out, b)
	}
	return out
}
