package stylesheet

import "errors"

var (
	ErrNoSettings = errors.New("no theme settings")
	ErrNoTheme    = errors.New("no theme")
)
