package hosting

import (
	"errors"
	"fmt"
)

// Response holds the raw outcome of one API call.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the JSON response body, verbatim.
	Body []byte
}

// Raw returns r. Typed results expose it through their
// embedded Response.
func (r Response) Raw() Response {
	return r
}

// Expect returns a *StatusError for op when the status
// code differs from want.
func (r Response) Expect(op string, want int) error {
	if r.StatusCode == want {
		return nil
	}

	return &StatusError{
		Op:       op,
		Want:     want,
		Response: r,
	}
}

// StatusError reports an unexpected status code.
type StatusError struct {
	Response

	// Op names the failed operation.
	Op string
	// Want is the status code the operation expects.
	Want int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"%s: unexpected status %d (want %d)",
		e.Op, e.StatusCode, e.Want,
	)
}

// ResponseOf extracts the Response carried by a
// *StatusError anywhere in err's chain.
func ResponseOf(err error) (Response, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Response, true
	}

	return Response{}, false
}
