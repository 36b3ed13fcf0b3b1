package compositor

import "errors"

var (
	ErrDependencyMissing = errors.New("composition dependency missing")
	ErrUpstreamFetch     = errors.New("raster fetch failed")
	ErrEmptyDocument     = errors.New("source document is empty")
)
