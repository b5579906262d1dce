package resync

import "errors"

// ErrAlreadyStarted is returned when Start is called twice
var ErrAlreadyStarted = errors.New("resync scheduler already started")
