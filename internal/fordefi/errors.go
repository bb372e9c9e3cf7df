package fordefi

import (
	"errors"
	"fmt"
)

// Client errors. Callers distinguish outcomes with errors.Is/errors.As:
// ErrAssetNotFound means the service has no matching asset, while an
// *APIError is a transport or HTTP-level failure. ErrMalformedResponse
// covers 2xx responses missing the field the caller depends on.
var (
	// ErrAssetNotFound is returned when the service answers 404 for an
	// asset identifier.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrMalformedResponse is returned on a 2xx response that lacks the
	// expected field (asset id, pricing job output).
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx response or transport failure from the Fordefi API.
type APIError struct {
	Endpoint string
	Status   int // 0 when the request never got a response
	Body     string
	Err      error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
