package btrieve

import (
	"iter"
	"sort"
	"strconv"
)

// Key identifies a logical record: either the primary key text or, when
// none is available, the row number assigned on insert.
type Key struct {
	str     string
	num     int
	numeric bool
}

func StringKey(s string) Key { return Key{str: s} }
func NumberKey(n int) Key    { return Key{num: n, numeric: true} }

func (k Key) String() string {
	if k.numeric {
		return "#" + strconv.Itoa(k.num)
	}
	return k.str
}

// Less orders numeric keys before string keys, each ascending.
func (k Key) Less(o Key) bool {
	if k.numeric != o.numeric {
		return k.numeric
	}
	if k.numeric {
		return k.num < o.num
	}
	return k.str < o.str
}

// Table is a versioned row store. It keeps at most one row per key: the one
// with the greatest ROW_VERSION seen.
type Table struct {
	primaryKey string
	rows       map[Key]Row
	nextNumber int
	superseded int
}

// NewTable returns an empty store keyed by primaryKey, which may be empty.
func NewTable(primaryKey string) *Table {
	return &Table{
		primaryKey: primaryKey,
		rows:       make(map[Key]Row),
	}
}

// AddRow assigns the next ROW_NUMBER to row and stores it under its key. An
// existing row is only replaced by one with a strictly greater ROW_VERSION.
// It reports whether row was stored.
func (t *Table) AddRow(row Row) bool {
	t.nextNumber++
	row = row.Clone()
	row.Set(ColumnRowNumber, t.nextNumber)

	key := t.keyOf(row)
	if current, ok := t.rows[key]; ok {
		if row.Version() <= current.Version() {
			t.superseded++
			return false
		}
		t.superseded++
	}
	t.rows[key] = row
	return true
}

func (t *Table) keyOf(row Row) Key {
	if t.primaryKey != "" {
		if s, err := row.String(t.primaryKey); err == nil {
			return StringKey(s)
		}
	}
	return NumberKey(row.Number())
}

// Find returns the row stored under key.
func (t *Table) Find(key Key) (Row, bool) {
	row, ok := t.rows[key]
	return row, ok
}

// FindString returns the row whose primary key is s.
func (t *Table) FindString(s string) (Row, bool) {
	return t.Find(StringKey(s))
}

// Len returns the number of distinct logical records.
func (t *Table) Len() int {
	return len(t.rows)
}

// Superseded returns how many physical rows lost to another version of the
// same record.
func (t *Table) Superseded() int {
	return t.superseded
}

// PrimaryKey returns the key column name.
func (t *Table) PrimaryKey() string {
	return t.primaryKey
}

// Keys returns every key in iteration order.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// All iterates rows in key order.
func (t *Table) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, k := range t.Keys() {
			if !yield(t.rows[k]) {
				return
			}
		}
	}
}

// Rows returns every row in key order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for row := range t.All() {
		out = append(out, row)
	}
	return out
}
