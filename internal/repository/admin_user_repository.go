package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type AdminUserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) error
	Save(ctx context.Context, user *domain.AdminUser) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type GormAdminUserRepository struct {
	*GormStore[domain.AdminUser]
}

func NewAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{GormStore: NewGormStore[domain.AdminUser](db, "admin_user")}
}

// FindByEmail matches case-insensitively on the trimmed address.
func (r *GormAdminUserRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := mapError(r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error)
	r.record(ctx, "find_by_email", err)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormAdminUserRepository) Save(ctx context.Context, user *domain.AdminUser) error {
	err := mapError(r.db.WithContext(ctx).Save(user).Error)
	r.record(ctx, "save", err)
	return err
}

func (r *GormAdminUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.AdminUser{}).Where("id = ?", id).UpdateColumn("last_login_at", at)
	err := mapError(res.Error)
	if err == nil && res.RowsAffected == 0 {
		err = ErrNotFound
	}
	r.record(ctx, "touch_last_login", err)
	return err
}
