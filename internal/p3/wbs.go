package p3

import (
	"strings"

	"github.com/alexanderramin/strata/internal/btrieve"
)

// maxWBSSegments is the number of WBSW_nn/WBSS_nn pairs in the header row.
const maxWBSSegments = 20

// WBSFormat splits a packed WBS code into fixed-width segments. Separators
// are inserted between segments: separator n precedes segment n+1.
type WBSFormat struct {
	widths     []int
	separators []string
}

// WBSCode is a parsed WBS value.
type WBSCode struct {
	Value     string
	Parent    string
	HasParent bool
	Level     int
}

// NewWBSFormat builds a format from explicit widths and separators. The
// list ends at the first non-positive width.
func NewWBSFormat(widths []int, separators []string) WBSFormat {
	var f WBSFormat
	for n, w := range widths {
		if w <= 0 {
			break
		}
		sep := ""
		if n < len(separators) {
			sep = separators[n]
		}
		f.widths = append(f.widths, w)
		f.separators = append(f.separators, sep)
	}
	return f
}

// WBSFormatFromHeader reads the WBSW_nn widths and WBSS_nn separators from a
// DIR header row. Separators are trimmed like all text, so a blank or NUL
// separator byte means the segments are joined directly.
func WBSFormatFromHeader(row btrieve.Row) WBSFormat {
	var widths []int
	var separators []string
	for n := 1; n <= maxWBSSegments; n++ {
		w, err := row.Int(wbsWidthColumn(n))
		if err != nil || w == 0 {
			break
		}
		widths = append(widths, w)
		separators = append(separators, row.StringOr(wbsSeparatorColumn(n), ""))
	}
	return NewWBSFormat(widths, separators)
}

// Segments returns the number of configured segments.
func (f WBSFormat) Segments() int {
	return len(f.widths)
}

// Parse splits raw into segments, clipping the last one at the end of raw.
func (f WBSFormat) Parse(raw string) WBSCode {
	var tokens []string
	level := 0
	for n, w := range f.widths {
		if raw == "" {
			break
		}
		if n > 0 {
			tokens = append(tokens, f.separators[n-1])
		}
		w = min(w, len(raw))
		tokens = append(tokens, raw[:w])
		raw = raw[w:]
		level++
	}

	code := WBSCode{
		Value: strings.Join(tokens, ""),
		Level: level,
	}
	if len(tokens) > 2 {
		code.Parent = strings.Join(tokens[:len(tokens)-2], "")
		code.HasParent = true
	}
	return code
}
