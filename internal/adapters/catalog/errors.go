package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound = errors.New("category not found")
)
