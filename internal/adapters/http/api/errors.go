package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")

	errMissingPredictions = errors.New("missing predictions")
	errMissingCategoryID  = errors.New("missing category_id")
	errMissingPick        = errors.New("missing pick")
	errInvalidNow         = errors.New("invalid now; must be RFC3339")
)
