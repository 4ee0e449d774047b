package btrieve

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// Synthetic columns attached to every decoded row.
const (
	ColumnRowVersion = "ROW_VERSION"
	ColumnRowNumber  = "ROW_NUMBER"
)

// Row is an ordered mapping from column name to decoded value. A nil value
// means the column was absent in the slot.
type Row struct {
	names  []string
	values map[string]any
}

// NewRow returns an empty row with room for n columns.
func NewRow(n int) Row {
	return Row{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set stores a value, keeping the first insertion position of name.
func (r *Row) Set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Clone returns a row that shares no state with r.
func (r Row) Clone() Row {
	c := NewRow(len(r.names))
	for _, name := range r.names {
		c.Set(name, r.values[name])
	}
	return c
}

// Len returns the number of columns, including synthetic ones.
func (r Row) Len() int {
	return len(r.names)
}

// Get returns the raw value of name. ok is false when the row has no such
// column; a present but absent value is returned as (nil, true).
func (r Row) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the column names in insertion order.
func (r Row) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Version returns ROW_VERSION, or 0 when unset.
func (r Row) Version() int {
	v, _ := r.values[ColumnRowVersion].(int)
	return v
}

// Number returns ROW_NUMBER, or 0 before the row reached a Table.
func (r Row) Number() int {
	v, _ := r.values[ColumnRowNumber].(int)
	return v
}

func (r Row) lookup(name string) (any, error) {
	v, ok := r.values[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrColumnNotFound)
	}
	if v == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrValueAbsent)
	}
	return v, nil
}

func typeError(name string, want string, got any) error {
	return fmt.Errorf("%s: want %s, have %T: %w", name, want, got, ErrColumnType)
}

// String returns a text column with surrounding spaces and NUL padding
// removed.
func (r Row) String(name string) (string, error) {
	v, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(name, "string", v)
	}
	return TrimText(s), nil
}

// StringOr is String with a fallback for missing or absent values.
func (r Row) StringOr(name, fallback string) string {
	s, err := r.String(name)
	if err != nil {
		return fallback
	}
	return s
}

// Int returns an integer column.
func (r Row) Int(name string) (int, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, typeError(name, "int", v)
	}
	return n, nil
}

// IntOr is Int with a fallback for missing or absent values.
func (r Row) IntOr(name string, fallback int) int {
	n, err := r.Int(name)
	if err != nil {
		return fallback
	}
	return n
}

// Float returns a percent column.
func (r Row) Float(name string) (float64, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, typeError(name, "float64", v)
	}
	return f, nil
}

// Date returns a date column.
func (r Row) Date(name string) (time.Time, error) {
	v, err := r.lookup(name)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, typeError(name, "time.Time", v)
	}
	return t, nil
}

// DatePtr returns a date column, or nil when it is missing or absent.
func (r Row) DatePtr(name string) *time.Time {
	t, err := r.Date(name)
	if err != nil {
		return nil
	}
	return &t
}

// Duration returns a duration column.
func (r Row) Duration(name string) (domain.Duration, error) {
	v, err := r.lookup(name)
	if err != nil {
		return domain.Duration{}, err
	}
	d, ok := v.(domain.Duration)
	if !ok {
		return domain.Duration{}, typeError(name, "duration", v)
	}
	return d, nil
}

// RelationType returns a relation type column.
func (r Row) RelationType(name string) (domain.RelationType, error) {
	v, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	rt, ok := v.(domain.RelationType)
	if !ok {
		return "", typeError(name, "relation type", v)
	}
	return rt, nil
}

// TrimText strips the space and NUL padding used by fixed-width text fields.
func TrimText(s string) string {
	return strings.Trim(s, " \x00")
}
