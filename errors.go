package lakesql

import "errors"

// Sentinel errors for the root package, testable with errors.Is.
var (
	// ErrMissingDialector is returned by Open when no gorm dialector is
	// configured.
	ErrMissingDialector = errors.New("lakesql: no dialector configured")

	// ErrMissingFormat is returned by reader terminals when no source
	// format has been set.
	ErrMissingFormat = errors.New("lakesql: no source format specified")

	// ErrMissingPath is returned by reader terminals that need a source
	// path when none has been set.
	ErrMissingPath = errors.New("lakesql: no source path specified")

	// ErrEmptyQuery is returned by writer terminals when the writer was
	// created with an empty source query.
	ErrEmptyQuery = errors.New("lakesql: empty source query")

	// ErrUnknownPart is returned by the calendar helpers for an
	// unsupported time part.
	ErrUnknownPart = errors.New("lakesql: unknown time part")

	// ErrParse is returned by the calendar helpers when a timestamp or
	// date string cannot be parsed.
	ErrParse = errors.New("lakesql: cannot parse time value")
)
