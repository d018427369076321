package orchestrator

import "errors"

// ErrNoActiveSession is returned by operations that require an
// authenticated user when none is present.
var ErrNoActiveSession = errors.New("no active session")
