package apitests

import (
	"github.com/restcheck/rest-api-tests/apiclient"
	"github.com/restcheck/rest-api-tests/config"
	"github.com/restcheck/rest-api-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

type environment struct {
	cfg      config.Config
	recorder apiclient.Recorder
}

// T represents a test or subtest in the API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, and with some extra features
// such as debug logging that are convenient for our use case. Those features are
// provided by our lower-level framework package.
//
// It also provides the two service clients. Each T gets its own client instances,
// so that auth-token state set in one test cannot leak into another; constructing
// a client does no network I/O, so this is cheap.
//
// To make test assertions, you can use the assert and require packages, passing
// the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     *environment
	blog    *apiclient.BlogClient
	user    *apiclient.UserClient
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{context: context, env: env}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
// The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The specified function receives a new T instance, with its own clients.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Config returns the configuration for this test run.
func (t *T) Config() config.Config {
	return t.env.cfg
}

// ClientOptions returns the options that wire a client's debug output and request
// recording into this test's scope. Tests that need independent client instances
// (for instance, to issue concurrent requests) construct them with these options.
func (t *T) ClientOptions() apiclient.Options {
	return apiclient.Options{
		Logger:   t.context.DebugLogger(),
		Recorder: t.env.recorder,
	}
}

// Blog returns this test's client for the posts/comments sandbox.
func (t *T) Blog() *apiclient.BlogClient {
	if t.blog == nil {
		t.blog = apiclient.NewBlogClient(t.env.cfg, t.ClientOptions())
	}
	return t.blog
}

// User returns this test's client for the users/auth sandbox.
func (t *T) User() *apiclient.UserClient {
	if t.user == nil {
		t.user = apiclient.NewUserClient(t.env.cfg, t.ClientOptions())
	}
	return t.user
}

// RequireResponse fails the test immediately if a call returned a transport
// error; it passes the response through otherwise.
func (t *T) RequireResponse(resp apiclient.Response, err error) apiclient.Response {
	require.NoError(t, err)
	return resp
}

// RequireJSON parses a response body as JSON, failing the test immediately if it
// is malformed.
func (t *T) RequireJSON(resp apiclient.Response) ldvalue.Value {
	v, err := resp.JSON()
	require.NoError(t, err)
	return v
}

// RequireResponseTime fails the test if the response took longer than the
// configured maximum acceptable round-trip time.
func (t *T) RequireResponseTime(resp apiclient.Response) {
	if resp.ElapsedMS > t.env.cfg.MaxResponseTime {
		t.Errorf("response time %.2fms for %s %s exceeds %.0fms",
			resp.ElapsedMS, resp.Method, resp.URL, t.env.cfg.MaxResponseTime)
	}
}
