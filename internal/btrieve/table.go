package btrieve

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// PageHeaderSize is the number of bytes before the first slot of a page.
const PageHeaderSize = 6

// LivePageMarker identifies a page that carries data slots.
const LivePageMarker = 0x4400

// RowValidator decides whether a decoded row is kept.
type RowValidator func(Row) bool

// TableDefinition describes the physical layout of one table type.
type TableDefinition struct {
	PageSize   int
	RecordSize int

	// PrimaryKey names the column used as the row identity. When empty, or
	// when the column is absent in a row, ROW_NUMBER is used instead.
	PrimaryKey string

	// Validator is optional.
	Validator RowValidator

	Columns []Column
}

// Validate checks that at least one slot fits in a page.
func (d TableDefinition) Validate() error {
	if d.RecordSize <= 0 {
		return fmt.Errorf("record size %d: %w", d.RecordSize, ErrInvalidDefinition)
	}
	if d.PageSize-PageHeaderSize < d.RecordSize {
		return fmt.Errorf("record size %d does not fit page size %d: %w",
			d.RecordSize, d.PageSize, ErrInvalidDefinition)
	}
	return nil
}

// SlotsPerPage returns how many slots a live page can hold.
func (d TableDefinition) SlotsPerPage() int {
	if d.RecordSize <= 0 {
		return 0
	}
	return (d.PageSize - PageHeaderSize) / d.RecordSize
}

// Column returns the column definition with the given name.
func (d TableDefinition) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Catalog is an immutable registry of table definitions keyed by a short
// upper-case type code.
type Catalog struct {
	defs map[string]TableDefinition
}

// NewCatalog validates every definition and returns a catalog that owns a
// private copy of defs.
func NewCatalog(defs map[string]TableDefinition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]TableDefinition, len(defs))}
	for code, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("table %s: %w", code, err)
		}
		def.Columns = slices.Clone(def.Columns)
		c.defs[strings.ToUpper(code)] = def
	}
	return c, nil
}

// Lookup returns the definition for a type code, matched case-insensitively.
func (c *Catalog) Lookup(code string) (TableDefinition, bool) {
	if c == nil {
		return TableDefinition{}, false
	}
	def, ok := c.defs[strings.ToUpper(code)]
	if !ok {
		return TableDefinition{}, false
	}
	def.Columns = slices.Clone(def.Columns)
	return def, true
}

// Codes returns the registered type codes in ascending order.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	codes := make([]string, 0, len(c.defs))
	for code := range c.defs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of registered table types.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}
