package service

import "errors"

// ErrUnknownTable is returned when a table code has no catalog entry.
var ErrUnknownTable = errors.New("unknown table type")
