package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the record returned by every client call. It is a plain value
// holding the fully-read response, rather than a handle onto the transport
// library's own response type, so tests can inspect it freely after the fact.
type Response struct {
	// Method and URL identify the request that produced this response.
	Method string
	URL    string

	// Status is whatever status code the service returned. The client never
	// treats any status as an error.
	Status int

	// Headers are the response headers exactly as received.
	Headers http.Header

	// Body is the full response body. It has already been read and the
	// connection released by the time the Response is returned.
	Body []byte

	// ElapsedMS is the wall-clock round-trip time in milliseconds, measured from
	// immediately before sending until the body was fully received. It is set on
	// every response and is never re-measured.
	ElapsedMS float64
}

// JSON parses the response body as a JSON value.
func (r Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), fmt.Errorf("malformed JSON response from %s: %w", r.URL, err)
	}
	return v, nil
}

// RequestRecord describes one completed call, or one transport failure, in a form
// suitable for recording outside the client.
type RequestRecord struct {
	StartedAt       time.Time
	Method          string
	URL             string
	RequestHeaders  http.Header
	RequestBody     []byte
	Status          int
	ResponseHeaders http.Header
	ResponseBody    []byte
	ElapsedMS       float64
	Error           string
}

// Recorder receives a RequestRecord for every call the client completes or fails.
type Recorder interface {
	Record(rec RequestRecord)
}
