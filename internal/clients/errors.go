package clients

import "errors"

// ErrMissingCredentials is returned when a client is used without the credentials it needs.
var ErrMissingCredentials = errors.New("missing credentials")
