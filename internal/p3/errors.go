package p3

import "errors"

var (
	// ErrMissingHeaderRow indicates that no DIR row passed validation.
	ErrMissingHeaderRow = errors.New("project header row not found")

	// ErrAmbiguousHeaderRow indicates more than one candidate DIR row.
	ErrAmbiguousHeaderRow = errors.New("project header row is ambiguous")

	// ErrNotDirectory indicates the database path is not a directory.
	ErrNotDirectory = errors.New("database path is not a directory")

	// ErrNoProjects indicates a directory without any P3 project.
	ErrNoProjects = errors.New("no P3 projects found")

	// ErrUnknownProject indicates a prefix with no matching files.
	ErrUnknownProject = errors.New("project not found")
)
