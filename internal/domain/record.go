package domain

import "time"

// Identity is the authenticated admin attached to a request.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Base carries the identity, timestamps and audit columns shared by every
// catalog record.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy uint      `json:"created_by"`
	UpdatedBy uint      `json:"updated_by"`
}

func (b *Base) RecordID() uint { return b.ID }

func (b *Base) ResetProvenance() {
	b.ID = 0
	b.CreatedAt = time.Time{}
	b.UpdatedAt = time.Time{}
}

func (b *Base) RestoreProvenance(from Base) {
	b.ID = from.ID
	b.CreatedAt = from.CreatedAt
	b.CreatedBy = from.CreatedBy
	b.UpdatedAt = from.UpdatedAt
}

func (b *Base) Provenance() Base { return *b }

func (b *Base) StampCreated(actorID uint) {
	b.CreatedBy = actorID
	b.UpdatedBy = actorID
}

func (b *Base) StampUpdated(actorID uint) {
	b.UpdatedBy = actorID
}

// Record is implemented by pointers to every mutable catalog model.
type Record interface {
	RecordID() uint
	ResetProvenance()
	RestoreProvenance(Base)
	Provenance() Base
	StampCreated(actorID uint)
	StampUpdated(actorID uint)
}

// Sluggable records derive a URL slug from a title-like field when none is given.
type Sluggable interface {
	SlugSource() string
	CurrentSlug() string
	SetSlug(string)
}

// Publishable records get a publish timestamp the first time they enter the
// published state.
type Publishable interface {
	IsPublished() bool
	PublishedTime() *time.Time
	SetPublishedAt(time.Time)
}
