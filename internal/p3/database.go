package p3

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/strata/internal/btrieve"
)

// projectFingerprint is the file name suffix that marks a P3 project.
const projectFingerprint = "STR.P3"

// Database holds the tables scanned for one project prefix.
type Database struct {
	Dir    string
	Prefix string

	tables map[string]*btrieve.Table
	stats  map[string]btrieve.ScanStats
	files  map[string]string
}

// Table returns the table for a type code. Missing tables read as empty.
func (db *Database) Table(code string) *btrieve.Table {
	if t, ok := db.tables[strings.ToUpper(code)]; ok {
		return t
	}
	return btrieve.NewTable("")
}

// HasTable reports whether a file was found and scanned for code.
func (db *Database) HasTable(code string) bool {
	_, ok := db.tables[strings.ToUpper(code)]
	return ok
}

// Codes returns the scanned table codes in ascending order.
func (db *Database) Codes() []string {
	codes := make([]string, 0, len(db.tables))
	for code := range db.tables {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Stats returns the scan counters for code.
func (db *Database) Stats(code string) btrieve.ScanStats {
	return db.stats[strings.ToUpper(code)]
}

// File returns the path scanned for code.
func (db *Database) File(code string) string {
	return db.files[strings.ToUpper(code)]
}

// ListProjectNames returns the sorted project prefixes found in dir.
func ListProjectNames(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToUpper(name), projectFingerprint) {
			continue
		}
		names = append(names, name[:len(name)-len(projectFingerprint)])
	}
	sort.Strings(names)
	return names, nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &btrieve.StructuralError{Path: dir, Op: "stat", Err: err}
	}
	if !info.IsDir() {
		return nil, &btrieve.StructuralError{Path: dir, Op: "stat", Err: ErrNotDirectory}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &btrieve.StructuralError{Path: dir, Op: "read directory", Err: err}
	}
	return entries, nil
}

// tableFile pairs a file with the table type its name declares.
type tableFile struct {
	code string
	path string
}

// matchTableFiles returns the files named <prefix><TYPE>.<ext>, compared
// case-insensitively, whose TYPE is in the catalog. Other files are
// returned as skipped.
func matchTableFiles(dir, prefix string, entries []os.DirEntry, catalog *btrieve.Catalog) (matched []tableFile, skipped []string) {
	upperPrefix := strings.ToUpper(prefix)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToUpper(e.Name())
		dot := strings.LastIndex(name, ".")
		if dot-3 != len(upperPrefix) || !strings.HasPrefix(name, upperPrefix) {
			continue
		}
		code := name[dot-3 : dot]
		if _, ok := catalog.Lookup(code); !ok {
			skipped = append(skipped, e.Name())
			continue
		}
		matched = append(matched, tableFile{code: code, path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].code != matched[j].code {
			return matched[i].code < matched[j].code
		}
		return matched[i].path < matched[j].path
	})

	// One file per table type; a second extension for the same type is a
	// backup or export.
	unique := matched[:0]
	for _, f := range matched {
		if len(unique) > 0 && unique[len(unique)-1].code == f.code {
			skipped = append(skipped, filepath.Base(f.path))
			continue
		}
		unique = append(unique, f)
	}
	return unique, skipped
}

// LoadOptions control how table files are scanned.
type LoadOptions struct {
	// Workers above 1 scans that many files concurrently. The default scans
	// one file at a time.
	Workers int

	Logger *slog.Logger
}

// LoadDatabase scans every table file of the project prefix in dir.
func LoadDatabase(ctx context.Context, dir, prefix string, catalog *btrieve.Catalog, opts LoadOptions) (*Database, error) {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}

	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	files, skipped := matchTableFiles(dir, prefix, entries, catalog)
	for _, name := range skipped {
		logger.DebugContext(ctx, "p3_skip_file", "file", name)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s in %s: %w", prefix, dir, ErrUnknownProject)
	}

	db := &Database{
		Dir:    dir,
		Prefix: prefix,
		tables: make(map[string]*btrieve.Table, len(files)),
		stats:  make(map[string]btrieve.ScanStats, len(files)),
		files:  make(map[string]string, len(files)),
	}

	if opts.Workers <= 1 {
		for _, f := range files {
			if err := db.scan(ctx, f, catalog, logger, nil); err != nil {
				return nil, err
			}
		}
		return db, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, f := range files {
		g.Go(func() error {
			return db.scan(gctx, f, catalog, logger, &mu)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *Database) scan(ctx context.Context, f tableFile, catalog *btrieve.Catalog, logger *slog.Logger, mu *sync.Mutex) error {
	def, _ := catalog.Lookup(f.code)
	table, stats, err := btrieve.ReadTableFile(ctx, f.path, def)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "p3_scan_table",
		"table", f.code,
		"pages", stats.Pages,
		"live_pages", stats.LivePages,
		"rows", table.Len(),
		"deleted_slots", stats.DeletedSlots,
		"rejected", stats.Rejected,
		"superseded", table.Superseded(),
	)

	if mu != nil {
		mu.Lock()
		defer mu.Unlock()
	}
	db.tables[f.code] = table
	db.stats[f.code] = stats
	db.files[f.code] = f.path
	return nil
}
