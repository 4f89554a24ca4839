package client

import (
	clienterrors "github.com/claralima1/Planner/client/internal/errors"
)

// ErrNotFound is matched (via errors.Is) by GetStudy misses and by any 404
// answer from the service.
var ErrNotFound = clienterrors.ErrNotFound

// HTTPError is returned for non-2xx responses. Its message is the server's
// error text when one was sent.
type HTTPError = clienterrors.HTTPError
