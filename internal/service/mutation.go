package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm/schema"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

const (
	MessageNoUpdatableFields = "No updatable fields provided"
	MessageInvalidBody       = "Invalid request body"
	MessageSlugRequired      = "A slug could not be derived; provide one explicitly"
)

// Payload is a decoded JSON object body. The keys present drive partial
// updates.
type Payload map[string]json.RawMessage

// immutableFields are never written from a client payload.
var immutableFields = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"created_by": {},
	"updated_at": {},
	"updated_by": {},
}

// Rules hold the per-resource normalisation and validation applied before
// any store call.
type Rules[T any] struct {
	Normalize func(*T)
	Validate  func(*T) error
}

type recordPtr[T any] interface {
	*T
	domain.Record
}

// Mutator implements create, update and delete for one resource with
// provenance stamping, slug derivation and publish-time stamping.
type Mutator[T any, P recordPtr[T]] struct {
	store    repository.Store[T]
	resource string
	rules    Rules[T]
	now      func() time.Time
	columns  map[string]string
}

func NewMutator[T any, P recordPtr[T]](store repository.Store[T], resource string, rules Rules[T]) *Mutator[T, P] {
	return &Mutator[T, P]{
		store:    store,
		resource: resource,
		rules:    rules,
		now:      time.Now,
		columns:  writableColumns[T](),
	}
}

func (m *Mutator[T, P]) Create(ctx context.Context, actor domain.Identity, payload Payload) (_ *T, err error) {
	defer func() { m.observe(ctx, "create", err) }()

	rec := new(T)
	if err := decodePayload(payload, rec); err != nil {
		return nil, err
	}
	P(rec).ResetProvenance()
	if err := m.prepare(rec); err != nil {
		return nil, err
	}
	if s, ok := any(rec).(domain.Sluggable); ok {
		if err := ensureSlug(s); err != nil {
			return nil, err
		}
	}
	if p, ok := any(rec).(domain.Publishable); ok {
		stampPublished(p, m.now())
	}
	P(rec).StampCreated(actor.ID)
	if err := m.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (m *Mutator[T, P]) Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (_ *T, err error) {
	defer func() { m.observe(ctx, "update", err) }()

	fields := m.updatableFields(payload)
	if len(fields) == 0 {
		return nil, apperr.BadRequest(MessageNoUpdatableFields)
	}
	// Type errors in the payload are rejected before the store is read.
	if err := decodePayload(fields, new(T)); err != nil {
		return nil, err
	}
	rec, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prov := P(rec).Provenance()
	if err := decodePayload(fields, rec); err != nil {
		return nil, err
	}
	P(rec).RestoreProvenance(prov)
	if err := m.prepare(rec); err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(fields)+3)
	for key := range fields {
		columns = append(columns, m.columns[key])
	}
	if s, ok := any(rec).(domain.Sluggable); ok && strings.TrimSpace(s.CurrentSlug()) == "" {
		if err := ensureSlug(s); err != nil {
			return nil, err
		}
		columns = appendColumn(columns, "slug")
	}
	if p, ok := any(rec).(domain.Publishable); ok && stampPublished(p, m.now()) {
		columns = appendColumn(columns, "published_at")
	}
	P(rec).StampUpdated(actor.ID)
	columns = appendColumn(columns, "updated_by")

	if err := m.store.UpdateColumns(ctx, id, columns, rec); err != nil {
		return nil, err
	}
	return m.store.FindByID(ctx, id)
}

// Delete removes the record. A missing id is reported as not found.
func (m *Mutator[T, P]) Delete(ctx context.Context, _ domain.Identity, id uint) (err error) {
	defer func() { m.observe(ctx, "delete", err) }()
	return m.store.DeleteByID(ctx, id)
}

func (m *Mutator[T, P]) prepare(rec *T) error {
	if m.rules.Normalize != nil {
		m.rules.Normalize(rec)
	}
	if m.rules.Validate != nil {
		return m.rules.Validate(rec)
	}
	return nil
}

// updatableFields drops immutable and unknown keys.
func (m *Mutator[T, P]) updatableFields(payload Payload) Payload {
	out := make(Payload, len(payload))
	for key, raw := range payload {
		if _, immutable := immutableFields[key]; immutable {
			continue
		}
		if _, known := m.columns[key]; !known {
			continue
		}
		out[key] = raw
	}
	return out
}

func (m *Mutator[T, P]) observe(ctx context.Context, action string, err error) {
	observability.RecordMutation(ctx, m.resource, action, mutationOutcome(err))
}

func mutationOutcome(err error) string {
	if err == nil {
		return "success"
	}
	switch apperr.From(err).Kind {
	case apperr.KindBadRequest:
		return "bad_request"
	case apperr.KindNotFound:
		return "not_found"
	case apperr.KindConflict:
		return "conflict"
	default:
		return "error"
	}
}

func decodePayload(payload Payload, dst any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return apperr.BadRequest(MessageInvalidBody)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &apperr.Error{Kind: apperr.KindBadRequest, Message: fmt.Sprintf("Invalid value for %s", typeErr.Field), Err: err}
		}
		return &apperr.Error{Kind: apperr.KindBadRequest, Message: MessageInvalidBody, Err: err}
	}
	return nil
}

func ensureSlug(s domain.Sluggable) error {
	if slug := strings.TrimSpace(s.CurrentSlug()); slug != "" {
		s.SetSlug(slug)
		return nil
	}
	slug := Slugify(s.SlugSource())
	if slug == "" {
		return apperr.BadRequest(MessageSlugRequired)
	}
	s.SetSlug(slug)
	return nil
}

// stampPublished sets the publish time on the first transition into the
// published state and reports whether it did.
func stampPublished(p domain.Publishable, now time.Time) bool {
	if !p.IsPublished() || p.PublishedTime() != nil {
		return false
	}
	p.SetPublishedAt(now.UTC())
	return true
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)
)

// Slugify lower-cases s, drops everything but letters, digits, spaces and
// hyphens, and joins the remaining words with single hyphens.
func Slugify(s string) string {
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func appendColumn(columns []string, col string) []string {
	for _, c := range columns {
		if c == col {
			return columns
		}
	}
	return append(columns, col)
}

var columnCache sync.Map

// writableColumns maps the JSON key of every persisted scalar field of T to
// its column name.
func writableColumns[T any]() map[string]string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := columnCache.Load(typ); ok {
		return cached.(map[string]string)
	}
	s, err := schema.Parse(new(T), &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		panic(fmt.Sprintf("parse schema for %s: %v", typ, err))
	}
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		out[name] = f.DBName
	}
	columnCache.Store(typ, out)
	return out
}
