package reconcile

import "errors"

var (
	// ErrIO is returned when reading, writing or scanning fails.
	ErrIO = errors.New("sitemap i/o error")

	// ErrNotFound is returned for a missing sitemap file or root directory.
	ErrNotFound = errors.New("not found")

	// ErrOutsideRoot is returned when a file does not lie under the sitemap root.
	ErrOutsideRoot = errors.New("file is outside the sitemap root")
)
