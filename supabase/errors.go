package supabase

import (
	"fmt"
)

// FetchError is the error returned when the query endpoint responds with a
// non-2xx status. Body is the raw response payload, kept for diagnosis.
type FetchError struct {
	Status int
	Body   []byte
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching table - status %v (%s)", e.Status, string(e.Body))
}

// DecodeError is the error returned when the response body is not decodable
// as a list of records.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding table data (%v)", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
