// Package listing implements the filter, sort and paginate pipeline shared by
// every list screen. It is pure computation over in-memory slices.
package listing

import (
	"slices"
	"strings"
	"time"
)

const (
	DefaultPageSize = 50
	EmptyMessage    = "Nenhum resultado encontrado"
)

type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// ParseDirection accepts "asc" or "desc", falling back to def.
func ParseDirection(s string, def Direction) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc
	case "desc":
		return Desc
	default:
		return def
	}
}

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Predicate decides whether an item stays in the list.
type Predicate[T any] func(item T) bool

// Comparator returns -1, 0 or 1.
type Comparator[T any] func(a, b T) int

// Page is one slice of a filtered and sorted list, along with the totals of
// the whole list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Filter keeps the items matching every predicate, in their original order.
// Nil predicates are ignored.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy of items. A nil comparator keeps the order.
func Sort[T any](items []T, cmp Comparator[T], dir Direction) []T {
	out := slices.Clone(items)
	if cmp == nil {
		return out
	}

	if dir != Desc {
		dir = Asc
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return int(dir) * cmp(a, b)
	})
	return out
}

// Paginate returns the 1-based page of items. Pages below 1 are clamped to 1
// and pages past the end come back empty, with the totals still filled in.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}

	start := (page - 1) * size
	if start >= total {
		return result
	}
	end := min(start+size, total)
	result.Items = items[start:end]
	return result
}

// Apply runs the whole pipeline: filter, then sort, then paginate.
func Apply[T any](items []T, preds []Predicate[T], cmp Comparator[T], dir Direction, page, size int) Page[T] {
	filtered := Filter(items, preds...)
	sorted := Sort(filtered, cmp, dir)
	return Paginate(sorted, page, size)
}

/*
 * Predicate helpers
 */

// Contains matches when any of the fields contains needle, ignoring case.
// An empty needle matches everything.
func Contains[T any](needle string, fields ...func(T) string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return nil
	}

	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Equals matches items whose field equals the selected value. A nil selection
// matches everything.
func Equals[T any, V comparable](selected *V, field func(T) V) Predicate[T] {
	if selected == nil {
		return nil
	}

	want := *selected
	return func(item T) bool {
		return field(item) == want
	}
}

// Toggle hides the items for which hidden returns true, unless show is set.
func Toggle[T any](show bool, hidden func(T) bool) Predicate[T] {
	if show {
		return nil
	}
	return func(item T) bool {
		return !hidden(item)
	}
}

// OnlyIf keeps the items matching cond when enabled.
func OnlyIf[T any](enabled bool, cond func(T) bool) Predicate[T] {
	if !enabled {
		return nil
	}
	return cond
}

/*
 * Comparator helpers
 */

// CompareStrings orders by a string field, ignoring case.
func CompareStrings[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

// CompareDates orders by a date field. Empty or unparseable dates come first.
func CompareDates[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		ta, okA := parseDate(field(a))
		tb, okB := parseDate(field(b))

		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		default:
			return ta.Compare(tb)
		}
	}
}

// CompareInts orders by an integer field, such as an epoch timestamp.
func CompareInts[T any](field func(T) int64) Comparator[T] {
	return func(a, b T) int {
		va, vb := field(a), field(b)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
