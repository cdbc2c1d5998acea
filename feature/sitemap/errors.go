package sitemap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAmbiguousSelection is returned when several sitemaps are configured and none was named.
	ErrAmbiguousSelection = errors.New("several sitemaps are configured")

	// ErrSitemapExists is returned by Create when the sitemap file is already there.
	ErrSitemapExists = errors.New("sitemap already exists")

	// ErrAborted is returned when the user declines a prompt.
	ErrAborted = errors.New("aborted")
)

// AmbiguousSelectionError lists the sitemaps the caller has to choose from.
type AmbiguousSelectionError struct {
	Candidates []string
}

func (e *AmbiguousSelectionError) Error() string {
	return fmt.Sprintf("%s, choose one of: %s", ErrAmbiguousSelection, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousSelectionError) Is(target error) bool {
	return target == ErrAmbiguousSelection
}
