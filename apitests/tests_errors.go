package apitests

import (
	"fmt"
	"strings"

	"github.com/restcheck/rest-api-tests/apiclient"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoErrorHandlingTests covers the services' behavior on missing resources,
// unsupported methods, and malformed or empty payloads. Non-2xx statuses come
// back as ordinary responses, so these tests assert on the codes directly.
func DoErrorHandlingTests(t *T) {
	t.Run("missing resources return 404", func(t *T) {
		scenarios := []struct {
			endpoint    string
			description string
		}{
			{"/posts/999", "non-existent post ID"},
			{"/posts/0", "zero post ID"},
			{"/posts/-1", "negative post ID"},
			{"/users/999", "non-existent user ID"},
			{"/comments/9999", "non-existent comment ID"},
			{"/nonexistent", "invalid endpoint"},
			{"/posts/abc", "non-numeric ID"},
		}
		for _, s := range scenarios {
			resp := t.RequireResponse(t.Blog().Get(s.endpoint, nil))
			assert.Equal(t, 404, resp.Status, "%s (%s)", s.description, s.endpoint)
			t.RequireResponseTime(resp)
		}
	})

	t.Run("missing user returns 404 with empty body", func(t *T) {
		resp := t.RequireResponse(t.User().User(23))
		assert.Equal(t, 404, resp.Status)

		body := t.RequireJSON(resp)
		assert.Equal(t, 0, body.Count(), "404 body should be an empty JSON object")
	})

	t.Run("error responses are values not errors", func(t *T) {
		// The client must hand back any status code as a normal response; a 4xx
		// must never surface as a TransportError.
		resp, err := t.Blog().Get("/posts/999", nil)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.Status)
		assert.GreaterOrEqual(t, resp.ElapsedMS, 0.0, "elapsed time must be set even on error statuses")
	})

	t.Run("malformed JSON body", func(t *T) {
		resp := t.RequireResponse(t.Blog().Request("POST", "/posts", apiclient.RequestOpts{
			Body: []byte(`{"title": "unterminated`),
		}))
		// The sandbox may reject it or coerce it, but either way we must get a
		// response value with timing attached, never a transport failure.
		assert.GreaterOrEqual(t, resp.ElapsedMS, 0.0)
		assert.NotZero(t, resp.Status)
		t.Debug("malformed body got status %d", resp.Status)
	})

	t.Run("empty body on create", func(t *T) {
		resp := t.RequireResponse(t.Blog().Request("POST", "/posts", apiclient.RequestOpts{}))
		assert.Equal(t, 201, resp.Status, "blog sandbox accepts empty creates")

		created := t.RequireJSON(resp)
		assert.False(t, created.GetByKey("id").IsNull(), "even an empty create gets an id")
	})

	t.Run("deleting a missing resource", func(t *T) {
		resp := t.RequireResponse(t.Blog().DeletePost(999))
		// The blog sandbox is idempotent about deletes.
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("large resource IDs do not break routing", func(t *T) {
		for _, id := range []int{1000, 100000, 2147483647} {
			resp := t.RequireResponse(t.Blog().Get(fmt.Sprintf("/posts/%d", id), nil))
			assert.Equal(t, 404, resp.Status, "post %d should not exist", id)
		}
	})

	t.Run("unsupported methods get a proper status", func(t *T) {
		scenarios := []struct {
			method      string
			endpoint    string
			description string
		}{
			{"PATCH", "/posts", "PATCH on a collection"},
			{"HEAD", "/posts/1", "HEAD on a resource"},
			{"OPTIONS", "/posts/1", "OPTIONS on a resource"},
			{"TRACE", "/posts/1", "TRACE on a resource"},
		}
		for _, s := range scenarios {
			resp := t.RequireResponse(t.Blog().Request(s.method, s.endpoint, apiclient.RequestOpts{}))
			assert.Contains(t, []int{200, 204, 404, 405, 501}, resp.Status,
				"%s %s should be answered, not crash the service", s.method, s.endpoint)
			t.Debug("%s %s got status %d", s.method, s.endpoint, resp.Status)
		}
	})

	t.Run("wrong or missing content type on create", func(t *T) {
		body := []byte(`{"title": "content type test", "body": "test", "userId": 1}`)

		resp := t.RequireResponse(t.Blog().Request("POST", "/posts", apiclient.RequestOpts{
			Body:    body,
			Headers: map[string]string{"Content-Type": "text/plain"},
		}))
		assert.Contains(t, []int{200, 201, 400, 415}, resp.Status, "text/plain content type")

		// A client with no JSON defaults at all sends the body with no
		// Content-Type header.
		opts := t.ClientOptions()
		opts.Timeout = t.Config().RequestTimeout
		opts.Headers = map[string]string{"Accept": "application/json"}
		bare := apiclient.New(t.Config().BlogAPIBaseURL, opts)
		resp = t.RequireResponse(bare.Request("POST", "/posts", apiclient.RequestOpts{Body: body}))
		assert.Contains(t, []int{200, 201, 400, 415}, resp.Status, "missing content type")
	})

	t.Run("boundary user IDs on create", func(t *T) {
		scenarios := []struct {
			userID      int
			description string
		}{
			{0, "zero user ID"},
			{-1, "negative user ID"},
			{999999, "very large user ID"},
			{2147483647, "max 32-bit integer"},
			{-2147483648, "min 32-bit integer"},
		}
		for _, s := range scenarios {
			data := ldvalue.ObjectBuild().
				Set("title", ldvalue.String("Boundary Test")).
				Set("body", ldvalue.String("Testing extreme values")).
				Set("userId", ldvalue.Int(s.userID)).
				Build()
			resp := t.RequireResponse(t.Blog().CreatePost(data))
			assert.Contains(t, []int{200, 201, 400, 422}, resp.Status, s.description)
			if resp.Status == 200 || resp.Status == 201 {
				created := t.RequireJSON(resp)
				assert.False(t, created.GetByKey("id").IsNull(), "%s: created post has no id", s.description)
			}
		}
	})

	t.Run("title length boundaries on create", func(t *T) {
		scenarios := []struct {
			title       string
			description string
		}{
			{"", "empty title"},
			{"a", "single character title"},
			{strings.Repeat("a", 1000), "1000 character title"},
			{strings.Repeat("a", 10000), "10000 character title"},
		}
		for _, s := range scenarios {
			data := ldvalue.ObjectBuild().
				Set("title", ldvalue.String(s.title)).
				Set("body", ldvalue.String("Testing title lengths")).
				Set("userId", ldvalue.Int(1)).
				Build()
			resp := t.RequireResponse(t.Blog().CreatePost(data))
			assert.Contains(t, []int{200, 201, 400, 413}, resp.Status, s.description)
			t.Debug("%s got status %d in %.2fms", s.description, resp.Status, resp.ElapsedMS)
		}
	})

	t.Run("special characters are preserved as text", func(t *T) {
		scenarios := []struct {
			content     string
			description string
		}{
			{"Unicode: 你好世界 🌍", "unicode and emoji"},
			{`HTML: <script>alert("hello")</script>`, "HTML tags"},
			{`SQL chars: '; DROP TABLE posts; --`, "SQL metacharacters"},
			{"Quotes: \"double\" 'single' `backtick`", "mixed quotes"},
			{"Lines:\nfirst\r\nsecond\tindented", "newlines and tabs"},
		}
		for _, s := range scenarios {
			data := ldvalue.ObjectBuild().
				Set("title", ldvalue.String("Special characters")).
				Set("body", ldvalue.String(s.content)).
				Set("userId", ldvalue.Int(1)).
				Build()
			resp := t.RequireResponse(t.Blog().CreatePost(data))
			assert.Contains(t, []int{200, 201, 400}, resp.Status, s.description)
			if resp.Status == 200 || resp.Status == 201 {
				created := t.RequireJSON(resp)
				assert.Equal(t, s.content, created.GetByKey("body").StringValue(),
					"%s should round-trip unchanged", s.description)
			}
		}
	})
}
