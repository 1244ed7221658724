package features

import "errors"

// ErrSchemaMismatch signals that a record does not fit the column set, order or
// types a model was trained on.
var ErrSchemaMismatch = errors.New("feature schema mismatch")
