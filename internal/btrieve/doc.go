// Package btrieve decodes fixed-record paged database files of the kind
// written by Btrieve-era DOS applications.
//
// A file is a sequence of pages of a table-specific size. Live data pages
// start with the marker 0x4400; every other page (index, free, overflow) is
// skipped whole. After a 6 byte page header a live page holds consecutive
// fixed-size slots. The first two bytes of a slot carry its version stamp;
// zero marks a deleted slot. The remaining bytes are decoded column by
// column according to a TableDefinition.
//
// The layouts handled here are reverse engineered. Column offsets may
// overlap or leave gaps, and decoders never fail: a value that cannot be
// decoded is reported as absent.
//
//	page:  | marker (2) | ??? (4) | slot | slot | ... | unused |
//	slot:  | version (2) | column data ... |
package btrieve
