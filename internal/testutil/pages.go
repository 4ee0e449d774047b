package testutil

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
)

// Values maps column names to the values a slot should decode to.
type Values map[string]any

// PageBuilder assembles a synthetic paged file for a table definition.
// Slots fill the current live page in order; a new page is started when the
// current one is full.
type PageBuilder struct {
	def   btrieve.TableDefinition
	pages [][]byte
	used  int
}

func NewPageBuilder(def btrieve.TableDefinition) *PageBuilder {
	return &PageBuilder{def: def}
}

// Slot appends a live slot with the given version stamp. Columns not named
// in vals are left zeroed. It panics on unknown columns or values of the
// wrong type, which is a broken fixture.
func (b *PageBuilder) Slot(version int, vals Values) *PageBuilder {
	slot := b.nextSlot()
	binary.LittleEndian.PutUint16(slot[0:2], uint16(version))
	for name, v := range vals {
		col, ok := b.def.Column(name)
		if !ok {
			panic(fmt.Sprintf("testutil: unknown column %q", name))
		}
		end := col.Offset + col.Coder.Size()
		if end > len(slot) {
			panic(fmt.Sprintf("testutil: column %q runs past the slot", name))
		}
		encodeField(slot[col.Offset:end], col.Coder.Kind(), v)
	}
	return b
}

// Deleted appends a slot with version 0 whose bytes would otherwise decode.
func (b *PageBuilder) Deleted(vals Values) *PageBuilder {
	b.Slot(1, vals)
	last := b.pages[len(b.pages)-1]
	start := btrieve.PageHeaderSize + (b.used-1)*b.def.RecordSize
	binary.LittleEndian.PutUint16(last[start:start+2], 0)
	return b
}

// DeadPage appends a page with a non-live marker filled with slot-like data.
func (b *PageBuilder) DeadPage(marker uint16) *PageBuilder {
	page := make([]byte, b.def.PageSize)
	binary.LittleEndian.PutUint16(page[0:2], marker)
	for start := btrieve.PageHeaderSize; start+b.def.RecordSize <= len(page); start += b.def.RecordSize {
		binary.LittleEndian.PutUint16(page[start:start+2], 7)
	}
	b.pages = append(b.pages, page)
	b.used = b.def.SlotsPerPage()
	return b
}

// NewPage forces subsequent slots onto a fresh live page.
func (b *PageBuilder) NewPage() *PageBuilder {
	b.startPage()
	return b
}

func (b *PageBuilder) nextSlot() []byte {
	if len(b.pages) == 0 || b.used >= b.def.SlotsPerPage() {
		b.startPage()
	}
	page := b.pages[len(b.pages)-1]
	start := btrieve.PageHeaderSize + b.used*b.def.RecordSize
	b.used++
	return page[start : start+b.def.RecordSize]
}

func (b *PageBuilder) startPage() {
	page := make([]byte, b.def.PageSize)
	binary.LittleEndian.PutUint16(page[0:2], btrieve.LivePageMarker)
	b.pages = append(b.pages, page)
	b.used = 0
}

// Bytes returns the file image.
func (b *PageBuilder) Bytes() []byte {
	var out []byte
	for _, p := range b.pages {
		out = append(out, p...)
	}
	return out
}

// WriteFile writes the file image to dir/name and returns the path.
func (b *PageBuilder) WriteFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func encodeField(b []byte, kind string, v any) {
	switch kind {
	case "byte":
		b[0] = byte(v.(int))
	case "short":
		binary.LittleEndian.PutUint16(b, uint16(v.(int)))
	case "int":
		binary.LittleEndian.PutUint32(b, uint32(v.(int)))
	case "string":
		s := v.(string)
		for i := range b {
			if i < len(s) {
				b[i] = s[i]
			} else {
				b[i] = ' '
			}
		}
	case "date":
		switch d := v.(type) {
		case time.Time:
			binary.LittleEndian.PutUint32(b, btrieve.EncodePackedDate(d))
		case uint32:
			binary.LittleEndian.PutUint32(b, d)
		default:
			panic(fmt.Sprintf("testutil: bad date value %T", v))
		}
	case "bdate":
		enc := btrieve.EncodeBtrieveDate(v.(time.Time))
		copy(b, enc[:])
	case "percent":
		binary.LittleEndian.PutUint32(b, uint32(int32(math.Round(v.(float64) * 10))))
	case "relation":
		binary.LittleEndian.PutUint16(b, uint16(relationCode(v)))
	case "duration":
		switch d := v.(type) {
		case int:
			binary.LittleEndian.PutUint16(b, uint16(int16(d)))
		case domain.Duration:
			binary.LittleEndian.PutUint16(b, uint16(int16(d.Value)))
		default:
			panic(fmt.Sprintf("testutil: bad duration value %T", v))
		}
	default:
		panic(fmt.Sprintf("testutil: unsupported column kind %q", kind))
	}
}

func relationCode(v any) int {
	switch r := v.(type) {
	case int:
		return r
	case domain.RelationType:
		switch r {
		case domain.RelationStartStart:
			return 1
		case domain.RelationFinishStart:
			return 2
		case domain.RelationFinishFinish:
			return 3
		}
		return 0
	default:
		panic(fmt.Sprintf("testutil: bad relation value %T", v))
	}
}
