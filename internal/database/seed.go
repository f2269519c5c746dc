package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

var defaultCategories = []domain.Category{
	{Name: "Bags", Slug: "bags", Description: "Leather and canvas bags."},
	{Name: "Home", Slug: "home", Description: "Ceramics and textiles for the home."},
	{Name: "Stationery", Slug: "stationery", Description: "Notebooks, pens and paper goods."},
}

type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	// SampleContent also loads the sample blogs, partners, products,
	// customers, coupons and orders.
	SampleContent bool
	Now           time.Time
}

type SeedReport struct {
	CreatedCategories int  `json:"created_categories"`
	CreatedBlogs      int  `json:"created_blogs"`
	CreatedPartners   int  `json:"created_partners"`
	CreatedProducts   int  `json:"created_products"`
	CreatedCustomers  int  `json:"created_customers"`
	CreatedCoupons    int  `json:"created_coupons"`
	CreatedOrders     int  `json:"created_orders"`
	AdminCreated      bool `json:"admin_created"`
	AdminUpdated      bool `json:"admin_updated"`
	Noop              bool `json:"noop"`
}

// Seed is idempotent: rows are matched by slug and never duplicated. The
// bootstrap admin is created, or re-activated with the given password.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) (*SeedReport, error) {
	report, err := seed(ctx, db, opts)
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
		return nil, err
	}
	observability.RecordDatabaseStartupEvent(ctx, "seed", "success")
	return report, nil
}

func seed(ctx context.Context, db *gorm.DB, opts SeedOptions) (*SeedReport, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	report := &SeedReport{}
	tx := db.WithContext(ctx)

	categories := make(map[string]uint, len(defaultCategories))
	for _, c := range defaultCategories {
		created, err := firstOrCreateBy(tx, &c, "slug", c.Slug)
		if err != nil {
			return nil, err
		}
		if created {
			report.CreatedCategories++
		}
		categories[c.Slug] = c.ID
	}

	if opts.SampleContent {
		for _, b := range repository.FixtureBlogs(opts.Now) {
			b.Base = domain.Base{}
			created, err := firstOrCreateBy(tx, &b, "slug", b.Slug)
			if err != nil {
				return nil, err
			}
			if created {
				report.CreatedBlogs++
			}
		}
		for _, p := range repository.FixturePartners(opts.Now) {
			p.Base = domain.Base{}
			created, err := firstOrCreateBy(tx, &p, "slug", p.Slug)
			if err != nil {
				return nil, err
			}
			if created {
				report.CreatedPartners++
			}
		}
		if err := seedSampleCommerce(ctx, db, opts.Now, categories, report); err != nil {
			return nil, err
		}
	}

	if opts.AdminEmail != "" {
		auth := service.NewAuthService(repository.NewAdminUserRepository(db), nil, nil)
		name := opts.AdminName
		if name == "" {
			name = "Administrator"
		}
		_, created, err := auth.EnsureAdmin(ctx, opts.AdminEmail, name, opts.AdminPassword)
		if err != nil {
			return nil, err
		}
		report.AdminCreated = created
		report.AdminUpdated = !created
	}

	report.Noop = report.CreatedCategories == 0 && report.CreatedBlogs == 0 &&
		report.CreatedPartners == 0 && report.CreatedProducts == 0 &&
		report.CreatedCustomers == 0 && report.CreatedCoupons == 0 &&
		report.CreatedOrders == 0 && !report.AdminCreated
	return report, nil
}

// firstOrCreateBy inserts dst unless a row with the same unique column value
// exists, in which case dst is filled from that row.
func firstOrCreateBy(tx *gorm.DB, dst any, column, value string) (bool, error) {
	res := tx.Where(column+" = ?", value).FirstOrCreate(dst)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
