package testutil

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/p3"
)

// P3Fixture writes a synthetic P3 project into a temporary directory.
type P3Fixture struct {
	t        *testing.T
	Dir      string
	Prefix   string
	catalog  *btrieve.Catalog
	builders map[string]*PageBuilder
}

// NewP3Fixture starts a project named prefix in a fresh temp directory.
func NewP3Fixture(t *testing.T, prefix string) *P3Fixture {
	t.Helper()
	return &P3Fixture{
		t:        t,
		Dir:      t.TempDir(),
		Prefix:   prefix,
		catalog:  p3.NewCatalog(),
		builders: make(map[string]*PageBuilder),
	}
}

// InDir places the fixture files in dir instead of its own temp directory,
// so several projects can share one directory.
func (f *P3Fixture) InDir(dir string) *P3Fixture {
	f.Dir = dir
	return f
}

// Builder returns the page builder for a table type.
func (f *P3Fixture) Builder(code string) *PageBuilder {
	if b, ok := f.builders[code]; ok {
		return b
	}
	def, ok := f.catalog.Lookup(code)
	if !ok {
		f.t.Fatalf("testutil: unknown table type %q", code)
	}
	b := NewPageBuilder(def)
	f.builders[code] = b
	return b
}

// Row appends a live slot to a table.
func (f *P3Fixture) Row(code string, version int, vals Values) *P3Fixture {
	f.Builder(code).Slot(version, vals)
	return f
}

// Header appends the master DIR row. vals override the defaults, which set a
// project start of 2020-01-06 and a two-segment WBS of widths 2 and 2
// separated by ".".
func (f *P3Fixture) Header(vals Values) *P3Fixture {
	row := Values{
		"SUB_PROJECT_NAME":   "",
		"PROJECT_TITLE":      "Test Project",
		"PROJECT_START_DATE": time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
	}
	for k, v := range WBSLayout([]int{2, 2}, []string{"."}) {
		row[k] = v
	}
	for k, v := range vals {
		row[k] = v
	}
	return f.Row(p3.TableHeader, 1, row)
}

// WBS appends a STR row.
func (f *P3Fixture) WBS(code, title string) *P3Fixture {
	return f.Row(p3.TableWBS, 1, Values{"CODE_VALUE": code, "CODE_TITLE": title})
}

// Activity appends an ACT row and, when wbs is not empty, its WBS
// cross-reference row.
func (f *P3Fixture) Activity(id, wbs string, vals Values) *P3Fixture {
	row := Values{"ACTIVITY_ID": id, "ORIGINAL_DURATION": 5}
	for k, v := range vals {
		row[k] = v
	}
	f.Row(p3.TableActivities, 1, row)
	if wbs != "" {
		f.Row(p3.TableWBSXref, 1, Values{"ACTIVITY_ID": id, "CODE_VALUE": wbs})
	}
	return f
}

// WBSLayout returns the DIR header values for a WBS format. Segments beyond
// len(widths) are zeroed.
func WBSLayout(widths []int, separators []string) Values {
	vals := Values{}
	for n := 1; n <= 20; n++ {
		w := 0
		if n <= len(widths) {
			w = widths[n-1]
		}
		sep := ""
		if n <= len(separators) {
			sep = separators[n-1]
		}
		vals[fmt.Sprintf("WBSW_%02d", n)] = w
		vals[fmt.Sprintf("WBSS_%02d", n)] = sep
	}
	return vals
}

// Write writes one file per table as <prefix><TYPE>.P3 and returns the
// directory.
func (f *P3Fixture) Write() string {
	f.t.Helper()
	// The STR file marks the project during directory enumeration.
	f.Builder(p3.TableWBS)
	codes := make([]string, 0, len(f.builders))
	for code := range f.builders {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		f.builders[code].WriteFile(f.t, f.Dir, f.Prefix+code+".P3")
	}
	return f.Dir
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Demo fills the fixture with a small complete schedule:
//
//	01       Site
//	  01.01  Foundations
//	    A100 Excavate       (complete, critical)
//	    A200 Pour footings  (half done, 2 days float)
//	  M300   Handover       (milestone)
//
// with resource CREW assigned to A200 and an A100 -> A200 finish-start link.
func (f *P3Fixture) Demo() *P3Fixture {
	return f.Header(Values{"PROJECT_TITLE": "Demo Tower", "COMPANY_TITLE": "Acme"}).
		WBS("01", "Site").
		WBS("0101", "Foundations").
		Activity("A100", "0101", Values{
			"ACTIVITY_TITLE":   "Excavate",
			"EARLY_START":      day(2020, time.January, 6),
			"EARLY_FINISH":     day(2020, time.January, 10),
			"PERCENT_COMPLETE": 100.0,
			"TOTAL_FLOAT":      0,
		}).
		Activity("A200", "0101", Values{
			"ACTIVITY_TITLE":   "Pour footings",
			"EARLY_START":      day(2020, time.January, 13),
			"EARLY_FINISH":     day(2020, time.January, 17),
			"PERCENT_COMPLETE": 50.0,
			"TOTAL_FLOAT":      2,
		}).
		Activity("M300", "01", Values{
			"ACTIVITY_TITLE":    "Handover",
			"ORIGINAL_DURATION": 0,
			"EARLY_START":       day(2020, time.January, 20),
			"EARLY_FINISH":      day(2020, time.January, 20),
			"TOTAL_FLOAT":       5,
		}).
		Row(p3.TableResources, 1, Values{"RES_ID": "CREW", "RES_TITLE": "Ground crew"}).
		Row(p3.TableRelations, 1, Values{
			"PREDECESSOR_ACTIVITY_ID": "A100",
			"SUCCESSOR_ACTIVITY_ID":   "A200",
			"LAG_TYPE":                domain.RelationFinishStart,
		}).
		Row(p3.TableAssignments, 1, Values{"ACTIVITY_ID": "A200", "RESOURCE_ID": "CREW"})
}
