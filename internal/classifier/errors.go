package classifier

import (
	"errors"
	"fmt"
	"net/http"
)

// Transport and response failures. Exactly one of these is produced per
// attempt; none of them is retried automatically.
var (
	ErrTimeout   = errors.New("classification request timed out")
	ErrNetwork   = errors.New("classification service unreachable")
	ErrMalformed = errors.New("malformed classifier response")
)

// ServerError is a non-2xx reply from the classification endpoint, carrying
// whatever human-readable message could be extracted from the body.
type ServerError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("classifier returned status %d (%s)", e.Status, http.StatusText(e.Status))
}
