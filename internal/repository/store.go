package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
)

// Store is the write surface the mutation helpers need from a resource.
type Store[T any] interface {
	Create(ctx context.Context, rec *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	UpdateColumns(ctx context.Context, id uint, columns []string, rec *T) error
	DeleteByID(ctx context.Context, id uint) error
}

// GormStore implements Store for a single gorm model.
type GormStore[T any] struct {
	db       *gorm.DB
	resource string
}

func NewGormStore[T any](db *gorm.DB, resource string) *GormStore[T] {
	return &GormStore[T]{db: db, resource: resource}
}

func (s *GormStore[T]) Create(ctx context.Context, rec *T) error {
	err := mapError(s.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error)
	s.record(ctx, "create", err)
	return err
}

func (s *GormStore[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var rec T
	err := mapError(s.db.WithContext(ctx).First(&rec, id).Error)
	s.record(ctx, "find_by_id", err)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateColumns writes only the named columns of rec to the row with id.
// updated_at is refreshed by gorm on every call.
func (s *GormStore[T]) UpdateColumns(ctx context.Context, id uint, columns []string, rec *T) error {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Select(columns).Updates(rec)
	err := mapError(res.Error)
	if err == nil && res.RowsAffected == 0 {
		err = ErrNotFound
	}
	s.record(ctx, "update", err)
	return err
}

func (s *GormStore[T]) DeleteByID(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	err := mapError(res.Error)
	if err == nil && res.RowsAffected == 0 {
		err = ErrNotFound
	}
	s.record(ctx, "delete_by_id", err)
	return err
}

func (s *GormStore[T]) list(ctx context.Context, base *gorm.DB, q ListQuery, order string, preloads ...string) (Page[T], error) {
	page, err := listPage[T](base, q, order, preloads...)
	err = mapError(err)
	s.record(ctx, "list", err)
	return page, err
}

func (s *GormStore[T]) model(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(T))
}

func (s *GormStore[T]) record(ctx context.Context, op string, err error) {
	observability.RecordRepositoryOperation(ctx, s.resource, op, outcomeOf(err))
}
