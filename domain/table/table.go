package table

import (
	"fmt"
	"math"
	"strings"
)

// Kind classifies a column's semantic type
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Missing markers: numeric columns use NaN, categorical columns use the
// empty string.

// Table is an ordered collection of named columns over a fixed row count.
// The pipeline mutates it during cleaning and derivation, then freezes it;
// report stages receive the frozen snapshot and must treat it as read-only.
type Table struct {
	rows   int
	order  []string
	kinds  map[string]Kind
	num    map[string][]float64
	cat    map[string][]string
	frozen bool
}

// New creates an empty table with a fixed row count.
func New(rows int) *Table {
	return &Table{
		rows:  rows,
		kinds: make(map[string]Kind),
		num:   make(map[string][]float64),
		cat:   make(map[string][]string),
	}
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// Columns returns column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.kinds[name]
	return ok
}

// Kind returns the column kind, or an empty Kind if absent.
func (t *Table) Kind(name string) Kind {
	return t.kinds[name]
}

// AddNumeric adds a numeric column. Missing entries are NaN.
func (t *Table) AddNumeric(name string, values []float64) error {
	if err := t.checkAdd(name, len(values)); err != nil {
		return err
	}
	t.order = append(t.order, name)
	t.kinds[name] = KindNumeric
	t.num[name] = values
	return nil
}

// AddCategorical adds a categorical column. Missing entries are empty strings.
func (t *Table) AddCategorical(name string, values []string) error {
	if err := t.checkAdd(name, len(values)); err != nil {
		return err
	}
	t.order = append(t.order, name)
	t.kinds[name] = KindCategorical
	t.cat[name] = values
	return nil
}

func (t *Table) checkAdd(name string, n int) error {
	if t.frozen {
		return fmt.Errorf("table is frozen; cannot add column %q", name)
	}
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if n != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, n, t.rows)
	}
	return nil
}

// Drop removes a column. No-op if absent.
func (t *Table) Drop(name string) error {
	if t.frozen {
		return fmt.Errorf("table is frozen; cannot drop column %q", name)
	}
	if !t.HasColumn(name) {
		return nil
	}
	delete(t.kinds, name)
	delete(t.num, name)
	delete(t.cat, name)
	for i, col := range t.order {
		if col == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetNumeric replaces the values of an existing numeric column.
func (t *Table) SetNumeric(name string, values []float64) error {
	if t.frozen {
		return fmt.Errorf("table is frozen; cannot set column %q", name)
	}
	if t.kinds[name] != KindNumeric {
		return fmt.Errorf("column %q is not numeric", name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.num[name] = values
	return nil
}

// SetCategorical replaces the values of an existing categorical column.
func (t *Table) SetCategorical(name string, values []string) error {
	if t.frozen {
		return fmt.Errorf("table is frozen; cannot set column %q", name)
	}
	if t.kinds[name] != KindCategorical {
		return fmt.Errorf("column %q is not categorical", name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.cat[name] = values
	return nil
}

// Numeric returns the values of a numeric column. The slice is shared with
// the table; callers borrow it read-only.
func (t *Table) Numeric(name string) ([]float64, bool) {
	v, ok := t.num[name]
	return v, ok
}

// Categorical returns the values of a categorical column, shared read-only.
func (t *Table) Categorical(name string) ([]string, bool) {
	v, ok := t.cat[name]
	return v, ok
}

// Freeze makes the table immutable. All reporting stages read the frozen
// snapshot only.
func (t *Table) Freeze() { t.frozen = true }

// Frozen reports whether the table has been frozen.
func (t *Table) Frozen() bool { return t.frozen }

// Clone returns a deep, unfrozen copy.
func (t *Table) Clone() *Table {
	c := New(t.rows)
	for _, name := range t.order {
		switch t.kinds[name] {
		case KindNumeric:
			vals := make([]float64, t.rows)
			copy(vals, t.num[name])
			_ = c.AddNumeric(name, vals)
		case KindCategorical:
			vals := make([]string, t.rows)
			copy(vals, t.cat[name])
			_ = c.AddCategorical(name, vals)
		}
	}
	return c
}

// MissingCount returns the number of missing entries in a column.
func (t *Table) MissingCount(name string) int {
	count := 0
	switch t.kinds[name] {
	case KindNumeric:
		for _, v := range t.num[name] {
			if math.IsNaN(v) {
				count++
			}
		}
	case KindCategorical:
		for _, v := range t.cat[name] {
			if v == "" {
				count++
			}
		}
	}
	return count
}

// MissingFraction returns the fraction of missing entries in a column.
func (t *Table) MissingFraction(name string) float64 {
	if t.rows == 0 {
		return 0
	}
	return float64(t.MissingCount(name)) / float64(t.rows)
}

// MissingCounts returns per-column missing counts in column order.
func (t *Table) MissingCounts() map[string]int {
	out := make(map[string]int, len(t.order))
	for _, name := range t.order {
		out[name] = t.MissingCount(name)
	}
	return out
}

// Head renders the first n rows as an aligned text preview.
func (t *Table) Head(n int) string {
	if n > t.rows {
		n = t.rows
	}
	var b strings.Builder
	b.WriteString(strings.Join(t.order, "\t"))
	b.WriteByte('\n')
	for i := 0; i < n; i++ {
		cells := make([]string, 0, len(t.order))
		for _, name := range t.order {
			switch t.kinds[name] {
			case KindNumeric:
				v := t.num[name][i]
				if math.IsNaN(v) {
					cells = append(cells, "NaN")
				} else {
					cells = append(cells, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), "."))
				}
			case KindCategorical:
				cells = append(cells, t.cat[name][i])
			}
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
