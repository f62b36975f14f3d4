package resp

import "errors"

var (
	ErrBadConfig   = errors.New("bad config")
	ErrConsumed    = errors.New("stream already piped")
	ErrMissingData = errors.New("missing data")
	ErrTransform   = errors.New("cannot transform")
)
