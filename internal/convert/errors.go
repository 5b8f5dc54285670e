package convert

import "errors"

// ErrEmptyGeometry reports a feature collection with no coordinates
// to measure. Both converters absorb it; only ResolveExtent returns
// it directly.
var ErrEmptyGeometry = errors.New("convert: feature collection has no coordinates")

// ParseError reports a malformed input document.
type ParseError struct {
	Format string // "svg" or "geojson"
	Err    error
}

func (e *ParseError) Error() string { return e.Format + ": " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }
