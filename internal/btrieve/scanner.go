package btrieve

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ScanStats counts what a scan saw.
type ScanStats struct {
	Pages        int
	LivePages    int
	Slots        int
	DeletedSlots int
	Rejected     int
	Rows         int
}

// Scanner walks a paged file once, page by page and slot by slot.
type Scanner struct {
	def   TableDefinition
	path  string
	stats ScanStats
}

// NewScanner returns a scanner for def. path is only used in errors.
func NewScanner(def TableDefinition, path string) *Scanner {
	return &Scanner{def: def, path: path}
}

// Stats returns the counters accumulated so far.
func (s *Scanner) Stats() ScanStats {
	return s.stats
}

// Rows returns a single-use sequence of decoded live rows. The sequence ends
// after the first error; a trailing partial page yields a StructuralError
// wrapping ErrShortPage.
func (s *Scanner) Rows(ctx context.Context, r io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		if err := s.def.Validate(); err != nil {
			yield(Row{}, err)
			return
		}

		page := make([]byte, s.def.PageSize)
		for {
			if err := ctx.Err(); err != nil {
				yield(Row{}, err)
				return
			}

			n, err := io.ReadFull(r, page)
			if errors.Is(err, io.EOF) {
				return
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				yield(Row{}, &StructuralError{
					Path: s.path,
					Op:   "read page",
					Err: fmt.Errorf("page %d has %d of %d bytes: %w",
						s.stats.Pages, n, s.def.PageSize, ErrShortPage),
				})
				return
			}
			if err != nil {
				yield(Row{}, &StructuralError{Path: s.path, Op: "read page", Err: err})
				return
			}

			s.stats.Pages++
			if binary.LittleEndian.Uint16(page[0:2]) != LivePageMarker {
				continue
			}
			s.stats.LivePages++

			for start := PageHeaderSize; start+s.def.RecordSize <= len(page); start += s.def.RecordSize {
				s.stats.Slots++
				version := int(binary.LittleEndian.Uint16(page[start : start+2]))
				if version == 0 {
					s.stats.DeletedSlots++
					continue
				}

				row := s.decode(page, start, version)
				if s.def.Validator != nil && !s.def.Validator(row) {
					s.stats.Rejected++
					continue
				}

				s.stats.Rows++
				if !yield(row, nil) {
					return
				}
			}
		}
	}
}

func (s *Scanner) decode(page []byte, start, version int) Row {
	row := NewRow(len(s.def.Columns) + 2)
	// Columns may overlap or run past the slot, so they are decoded against
	// the page buffer rather than a slot-sized slice.
	for _, c := range s.def.Columns {
		row.Set(c.Name, c.Decode(page, start))
	}
	row.Set(ColumnRowVersion, version)
	return row
}
