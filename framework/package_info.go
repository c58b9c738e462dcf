// Package framework contains the low-level test-execution infrastructure that is
// not specific to any particular API under test.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results, with regex-based filtering of which tests run.
//
// 2. Each test has a capturing debug logger; harness components write their debug
// output there, and the console logger replays it only when a test fails (or for
// all tests, if so configured).
//
// The domain-specific code that knows which remote services are being exercised is
// responsible for providing the HTTP clients and a domain-specific test API on top
// of the test context.
package framework
