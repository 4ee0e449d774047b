package btrieve

import (
	"context"
	"io"
	"os"
)

// ReadTable scans r to completion into a versioned row store.
func ReadTable(ctx context.Context, r io.Reader, def TableDefinition) (*Table, ScanStats, error) {
	return readTable(ctx, r, def, "")
}

// ReadTableFile opens path, scans it and closes it before returning.
func ReadTableFile(ctx context.Context, path string, def TableDefinition) (*Table, ScanStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ScanStats{}, &StructuralError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	return readTable(ctx, f, def, path)
}

func readTable(ctx context.Context, r io.Reader, def TableDefinition, path string) (*Table, ScanStats, error) {
	scanner := NewScanner(def, path)
	table := NewTable(def.PrimaryKey)
	for row, err := range scanner.Rows(ctx, r) {
		if err != nil {
			return nil, scanner.Stats(), err
		}
		table.AddRow(row)
	}
	return table, scanner.Stats(), nil
}
