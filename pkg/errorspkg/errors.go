// Package errorspkg provides errors shared across all layers.
package errorspkg

import "errors"

// ErrInternal is returned for any fault the caller cannot act on. The
// underlying cause is logged where it happens and never leaves the server.
var ErrInternal = errors.New("internal")
