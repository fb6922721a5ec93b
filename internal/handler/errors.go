package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration names no transport address, so no handler can be built.
// Treated as a fatal misconfiguration at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
