package storage

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	defaultCatalogRowLength = 80
	defaultCatalogRowCount  = 5
)

// Listable is a spec that can be ordered and named in a catalog.
type Listable interface {
	ValidatingSpec
	SortKey() int
	Title() string
}

// Catalog is a fixed, ordered view of a store. Entries are numbered from 1.
type Catalog[T Listable] struct {
	entries []entry[T]
}

type entry[T Listable] struct {
	id  string
	val T
}

// NewCatalog snapshots st ordered by SortKey, ties broken by id.
func NewCatalog[T Listable](st Storer[T]) *Catalog[T] {
	c := &Catalog[T]{}
	for id, val := range st.GetAll() {
		c.entries = append(c.entries, entry[T]{id: id, val: val})
	}
	slices.SortFunc(c.entries, func(a, b entry[T]) int {
		if n := cmp.Compare(a.val.SortKey(), b.val.SortKey()); n != 0 {
			return n
		}
		return cmp.Compare(a.id, b.id)
	})
	return c
}

func (c *Catalog[T]) Len() int {
	return len(c.entries)
}

// At returns the entry at zero-based position i.
func (c *Catalog[T]) At(i int) (string, T, error) {
	if i < 0 || i >= len(c.entries) {
		var zero T
		return "", zero, fmt.Errorf("%w: position %d", ErrNotFound, i)
	}
	return c.entries[i].id, c.entries[i].val, nil
}

// IndexOf returns the zero-based position of id, or -1.
func (c *Catalog[T]) IndexOf(id string) int {
	return slices.IndexFunc(c.entries, func(e entry[T]) bool { return e.id == id })
}

// Select maps a one-based menu choice to an id, or "" when out of range.
func (c *Catalog[T]) Select(i int) string {
	if i < 1 || i > len(c.entries) {
		return ""
	}
	return c.entries[i-1].id
}

// Rows lays the titles out in numbered columns, filling each column top to
// bottom before moving right.
func (c *Catalog[T]) Rows() []string {
	colWidth := 1
	for _, e := range c.entries {
		// number and spacing: "nn. <title>  "
		if l := len(e.val.Title()) + 7; l > colWidth {
			colWidth = l
		}
	}

	numCols := max(defaultCatalogRowLength/colWidth, 1)
	numRows := max((len(c.entries)+numCols-1)/numCols, defaultCatalogRowCount)

	rows := make([]string, numRows)
	for i, e := range c.entries {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, e.val.Title())
	}

	out := rows[:0]
	for _, r := range rows {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
