package domain

import "time"

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"

	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

type Blog struct {
	Base
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	Author      string     `gorm:"size:120;index" json:"author"`
	CoverImage  string     `gorm:"size:500" json:"cover_image"`
	Status      string     `gorm:"size:20;not null;default:draft;index" json:"status"`
	Featured    bool       `gorm:"not null" json:"featured"`
	PublishedAt *time.Time `json:"published_at"`
}

func (b *Blog) SlugSource() string  { return b.Title }
func (b *Blog) CurrentSlug() string { return b.Slug }
func (b *Blog) SetSlug(s string)    { b.Slug = s }

func (b *Blog) IsPublished() bool          { return b.Status == BlogStatusPublished }
func (b *Blog) PublishedTime() *time.Time  { return b.PublishedAt }
func (b *Blog) SetPublishedAt(t time.Time) { b.PublishedAt = &t }

type Category struct {
	Base
	Name        string `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Slug        string `gorm:"size:140;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
}

func (c *Category) SlugSource() string  { return c.Name }
func (c *Category) CurrentSlug() string { return c.Slug }
func (c *Category) SetSlug(s string)    { c.Slug = s }

type Product struct {
	Base
	Name        string  `gorm:"size:160;not null;index" json:"name"`
	Slug        string  `gorm:"size:180;not null;uniqueIndex" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Status      string  `gorm:"size:20;not null;default:active;index" json:"status"`
	CategoryID  *uint   `gorm:"index" json:"category_id"`
}

func (p *Product) SlugSource() string  { return p.Name }
func (p *Product) CurrentSlug() string { return p.Slug }
func (p *Product) SetSlug(s string)    { p.Slug = s }

type Partner struct {
	Base
	Name        string `gorm:"size:160;not null" json:"name"`
	Slug        string `gorm:"size:180;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"size:1000" json:"description"`
	Website     string `gorm:"size:500" json:"website"`
	LogoURL     string `gorm:"size:500" json:"logo_url"`
	Month       string `gorm:"size:7;not null;index" json:"month"`
	Featured    bool   `gorm:"not null" json:"featured"`
	Active      bool   `gorm:"not null" json:"active"`
}

func (p *Partner) SlugSource() string  { return p.Name }
func (p *Partner) CurrentSlug() string { return p.Slug }
func (p *Partner) SetSlug(s string)    { p.Slug = s }
