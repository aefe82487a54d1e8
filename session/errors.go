package session

import "errors"

// ErrSessionDestroyed is returned by every operation on a destroyed session.
var ErrSessionDestroyed = errors.New("session destroyed")
