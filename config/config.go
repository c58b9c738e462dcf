// Package config defines the fixed configuration for a test run: the base URLs of
// the two sandbox services, canned request payloads, known-valid credentials, and
// the timing thresholds used by assertions.
package config

import (
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Config is passed by value to client constructors and test suites. There is no
// environment or file override mechanism; the runner may adjust individual fields
// from command-line flags before starting the suite.
type Config struct {
	// BlogAPIBaseURL is the posts/comments sandbox (JSONPlaceholder-compatible).
	BlogAPIBaseURL string

	// UserAPIBaseURL is the users/auth sandbox (ReqRes-compatible).
	UserAPIBaseURL string

	// TestPostData is a well-formed payload for creating a post.
	TestPostData ldvalue.Value

	// TestUserData is a well-formed payload for creating a user.
	TestUserData ldvalue.Value

	// ValidLogin is a credential pair the user sandbox accepts for /login.
	ValidLogin ldvalue.Value

	// ValidRegister is a credential pair the user sandbox accepts for /register.
	ValidRegister ldvalue.Value

	// RequestTimeout is the per-request timeout applied by every client.
	RequestTimeout time.Duration

	// MaxResponseTime is the largest round-trip time, in milliseconds, that the
	// timing assertions will accept from these external services.
	MaxResponseTime float64
}

// Default returns the standard configuration for the public sandbox services.
func Default() Config {
	return Config{
		BlogAPIBaseURL: "https://jsonplaceholder.typicode.com",
		UserAPIBaseURL: "https://reqres.in/api",

		TestPostData: ldvalue.ObjectBuild().
			Set("title", ldvalue.String("Test Post Title")).
			Set("body", ldvalue.String("This is a test post body for API testing")).
			Set("userId", ldvalue.Int(1)).
			Build(),

		TestUserData: ldvalue.ObjectBuild().
			Set("name", ldvalue.String("John Doe")).
			Set("job", ldvalue.String("QA Automation Engineer")).
			Build(),

		ValidLogin: ldvalue.ObjectBuild().
			Set("email", ldvalue.String("eve.holt@reqres.in")).
			Set("password", ldvalue.String("cityslicka")).
			Build(),

		ValidRegister: ldvalue.ObjectBuild().
			Set("email", ldvalue.String("eve.holt@reqres.in")).
			Set("password", ldvalue.String("pistol")).
			Build(),

		RequestTimeout:  time.Second * 5,
		MaxResponseTime: 3000,
	}
}
