package apiclient

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/restcheck/rest-api-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const DefaultTimeout = time.Second * 5

// Options configures a Client at construction time.
type Options struct {
	// Timeout is the per-request timeout. Zero means DefaultTimeout. There is no
	// retry, backoff, or deadline composition across calls.
	Timeout time.Duration

	// Headers, if non-nil, replaces the standard default header set entirely.
	Headers map[string]string

	// Logger receives a curl-style line of debug output for every request.
	Logger framework.Logger

	// Recorder, if non-nil, receives a RequestRecord for every call.
	Recorder Recorder
}

// RequestOpts are the per-call options for Client.Request.
type RequestOpts struct {
	// Headers are merged over the client's default headers for this call only.
	Headers map[string]string

	// Params are query parameters appended to the endpoint path.
	Params url.Values

	// Body is a raw request body, sent as-is. It takes precedence over JSON.
	Body []byte

	// JSON is a structured request body, serialized by the client. A null value
	// means no body.
	JSON ldvalue.Value
}

// Client is an instrumented HTTP client bound to one service's base URL. Every
// call returns a Response with ElapsedMS populated, or a *TransportError; there is
// no third outcome. Constructing a Client performs no network I/O.
//
// The default header set is mutable via SetAuthToken/RemoveAuthToken. Mutating it
// while other goroutines are issuing calls on the same Client is racy; concurrent
// callers should use independent Client instances.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	headerLock sync.Mutex
	logger     framework.Logger
	recorder   Recorder
}

// New creates a Client bound to the given base URL. Unless overridden in opts,
// the default headers are Content-Type and Accept of application/json.
func New(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	headers := opts.Headers
	if headers == nil {
		headers = map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		headers:    copyHeaderMap(headers),
		logger:     logger,
		recorder:   opts.Recorder,
	}
}

// BaseURL returns the base URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthToken adds an Authorization: Bearer header to the default header set,
// affecting every subsequent call on this client.
func (c *Client) SetAuthToken(token string) {
	c.headerLock.Lock()
	c.headers["Authorization"] = "Bearer " + token
	c.headerLock.Unlock()
}

// RemoveAuthToken removes the Authorization header; a no-op if it was not set.
func (c *Client) RemoveAuthToken() {
	c.headerLock.Lock()
	delete(c.headers, "Authorization")
	c.headerLock.Unlock()
}

// Request sends one HTTP request to baseURL+endpoint and waits for the full
// response body. Any network-level failure is returned as a *TransportError; any
// status code, including 4xx/5xx, is a normal return.
func (c *Client) Request(method, endpoint string, opts RequestOpts) (Response, error) {
	reqURL := c.baseURL + endpoint
	if len(opts.Params) > 0 {
		reqURL += "?" + opts.Params.Encode()
	}

	body := opts.Body
	if body == nil && !opts.JSON.IsNull() {
		body = []byte(opts.JSON.JSONString())
	}

	var bodyReader *bytes.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	var req *http.Request
	var err error
	if bodyReader == nil {
		req, err = http.NewRequest(method, reqURL, nil)
	} else {
		req, err = http.NewRequest(method, reqURL, bodyReader)
	}
	if err != nil {
		return Response{}, newTransportError(err)
	}

	c.headerLock.Lock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.headerLock.Unlock()
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Printf("%s", curlCommand(method, reqURL, req.Header, body))

	record := RequestRecord{
		StartedAt:      time.Now(),
		Method:         method,
		URL:            reqURL,
		RequestHeaders: req.Header.Clone(),
		RequestBody:    body,
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		record.Error = err.Error()
		c.record(record)
		return Response{}, newTransportError(err)
	}
	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	// The clock stops only after the body has been fully received, so the
	// measurement covers the whole request/response cycle.
	elapsed := time.Since(start)
	if err != nil {
		record.Error = err.Error()
		c.record(record)
		return Response{}, newTransportError(err)
	}

	result := Response{
		Method:    method,
		URL:       reqURL,
		Status:    resp.StatusCode,
		Headers:   resp.Header,
		Body:      respBody,
		ElapsedMS: float64(elapsed) / float64(time.Millisecond),
	}
	c.logger.Printf("got %d from %s %s in %.2fms", result.Status, method, reqURL, result.ElapsedMS)

	record.Status = result.Status
	record.ResponseHeaders = result.Headers.Clone()
	record.ResponseBody = result.Body
	record.ElapsedMS = result.ElapsedMS
	c.record(record)

	return result, nil
}

// Get sends a GET request with optional query parameters.
func (c *Client) Get(endpoint string, params url.Values) (Response, error) {
	return c.Request("GET", endpoint, RequestOpts{Params: params})
}

// Post sends a POST request. A null data value means no body.
func (c *Client) Post(endpoint string, data ldvalue.Value) (Response, error) {
	return c.Request("POST", endpoint, RequestOpts{JSON: data})
}

// Put sends a PUT request. A null data value means no body.
func (c *Client) Put(endpoint string, data ldvalue.Value) (Response, error) {
	return c.Request("PUT", endpoint, RequestOpts{JSON: data})
}

// Patch sends a PATCH request. A null data value means no body.
func (c *Client) Patch(endpoint string, data ldvalue.Value) (Response, error) {
	return c.Request("PATCH", endpoint, RequestOpts{JSON: data})
}

// Delete sends a DELETE request with no body.
func (c *Client) Delete(endpoint string) (Response, error) {
	return c.Request("DELETE", endpoint, RequestOpts{})
}

func (c *Client) record(rec RequestRecord) {
	if c.recorder != nil {
		c.recorder.Record(rec)
	}
}

func copyHeaderMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
