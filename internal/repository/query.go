package repository

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	defaultOrder = "created_at desc, id desc"
)

// ListQuery is the common windowing and search input of every list
// operation. A zero Limit is honoured and yields an empty page carrying the
// real total.
type ListQuery struct {
	Q      string
	Limit  int
	Offset int
}

func (q ListQuery) normalized() ListQuery {
	q.Q = strings.TrimSpace(q.Q)
	if q.Limit < 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// Page is one window of a filtered result set. Total counts the whole
// filtered set, not the window.
type Page[T any] struct {
	Items  []T
	Total  int64
	Limit  int
	Offset int
}

// HasMore reports whether rows exist beyond this window.
func (p Page[T]) HasMore() bool {
	return int64(p.Offset+p.Limit) < p.Total
}

func windowSlice[T any](all []T, q ListQuery) Page[T] {
	q = q.normalized()
	page := Page[T]{Items: []T{}, Total: int64(len(all)), Limit: q.Limit, Offset: q.Offset}
	if q.Limit == 0 || q.Offset >= len(all) {
		return page
	}
	end := q.Offset + q.Limit
	if end > len(all) {
		end = len(all)
	}
	page.Items = append(page.Items, all[q.Offset:end]...)
	return page
}

// listPage counts the filtered base query and then fetches one ordered
// window of it.
func listPage[T any](base *gorm.DB, q ListQuery, order string, preloads ...string) (Page[T], error) {
	q = q.normalized()
	page := Page[T]{Items: []T{}, Limit: q.Limit, Offset: q.Offset}
	base = base.Session(&gorm.Session{})
	if err := base.Count(&page.Total).Error; err != nil {
		return Page[T]{}, err
	}
	if q.Limit == 0 || int64(q.Offset) >= page.Total {
		return page, nil
	}
	if order == "" {
		order = defaultOrder
	}
	find := base.Order(order).Offset(q.Offset).Limit(q.Limit)
	for _, p := range preloads {
		find = find.Preload(p)
	}
	if err := find.Find(&page.Items).Error; err != nil {
		return Page[T]{}, err
	}
	return page, nil
}

// likeExpr matches a lowered column against a search pattern.
func likeExpr(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '\\'"
}

// applySearch ORs the given expressions together, binding the escaped
// pattern to every placeholder they contain. Blank input adds no filter.
func applySearch(db *gorm.DB, q string, exprs ...string) *gorm.DB {
	q = strings.TrimSpace(q)
	if q == "" || len(exprs) == 0 {
		return db
	}
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	var args []any
	for _, e := range exprs {
		for i := 0; i < strings.Count(e, "?"); i++ {
			args = append(args, pattern)
		}
	}
	return db.Where("("+strings.Join(exprs, " OR ")+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
