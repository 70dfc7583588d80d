package gopher

import "errors"

// Error kinds surfaced by the transport, the menu parser and the path
// sanitizer. Returned errors wrap these with %w, so a caller can
// classify a failure with errors.Is rather than inspecting message
// text; the indexer logs them without classifying.
var (
	ErrConnectTimeout   = errors.New("gopher: connect timeout")
	ErrConnectRefused   = errors.New("gopher: connect refused")
	ErrConnectOther     = errors.New("gopher: connect failed")
	ErrReadTimeout      = errors.New("gopher: read timeout")
	ErrResponseTooLarge = errors.New("gopher: response too large")
	ErrMalformedLine    = errors.New("gopher: malformed menu line")
	ErrMalformedPort    = errors.New("gopher: malformed port")
	ErrHashUnavailable  = errors.New("gopher: sha-256 unavailable")
)
