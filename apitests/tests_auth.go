package apitests

import (
	"net/url"
	"strings"

	"github.com/restcheck/rest-api-tests/apiclient"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

// DoAuthTests covers authentication on the user sandbox (login/register) and the
// security properties of both services: HTTPS, CORS headers, bearer token
// handling, and robustness against hostile or extreme inputs.
func DoAuthTests(t *T) {
	t.Run("HTTPS is enforced", func(t *T) {
		resp := t.RequireResponse(t.Blog().AllPosts())
		assert.Equal(t, 200, resp.Status)
		assert.True(t, strings.HasPrefix(resp.URL, "https://"), "requests should use HTTPS: %s", resp.URL)
		assert.NotEmpty(t, resp.Headers.Get("Content-Type"), "missing Content-Type header")
	})

	t.Run("CORS headers are present", func(t *T) {
		resp := t.RequireResponse(t.Blog().Request("GET", "/posts", apiclient.RequestOpts{
			Headers: map[string]string{
				"Origin":                        "https://example.com",
				"Access-Control-Request-Method": "GET",
			},
		}))
		assert.Equal(t, 200, resp.Status)
		assert.NotEmpty(t, resp.Headers.Get("Access-Control-Allow-Origin"), "CORS header missing")
	})

	t.Run("login with valid credentials", func(t *T) {
		resp := t.RequireResponse(t.User().Login(t.Config().ValidLogin))
		assert.Equal(t, 200, resp.Status)
		t.RequireResponseTime(resp)

		body := t.RequireJSON(resp)
		assert.NotEmpty(t, body.GetByKey("token").StringValue(), "login should return a token")
	})

	t.Run("login without password is rejected", func(t *T) {
		creds := ldvalue.ObjectBuild().
			Set("email", t.Config().ValidLogin.GetByKey("email")).
			Build()
		resp := t.RequireResponse(t.User().Login(creds))
		assert.Equal(t, 400, resp.Status)

		body := t.RequireJSON(resp)
		assert.NotEmpty(t, body.GetByKey("error").StringValue(), "rejection should carry an error message")
	})

	t.Run("register with valid credentials", func(t *T) {
		resp := t.RequireResponse(t.User().Register(t.Config().ValidRegister))
		assert.Equal(t, 200, resp.Status)

		body := t.RequireJSON(resp)
		assert.False(t, body.GetByKey("id").IsNull(), "register should return an id")
		assert.NotEmpty(t, body.GetByKey("token").StringValue(), "register should return a token")
	})

	t.Run("register without password is rejected", func(t *T) {
		data := ldvalue.ObjectBuild().
			Set("email", ldvalue.String("sydney@fife")).
			Build()
		resp := t.RequireResponse(t.User().Register(data))
		assert.Equal(t, 400, resp.Status)
	})

	t.Run("bearer token round trip", func(t *T) {
		// The sandboxes accept anonymous requests, so what we verify here is that
		// setting and removing a token leaves the client fully usable and that
		// the service keeps answering either way. The wire-level header behavior
		// is pinned down in the apiclient unit tests.
		blog := t.Blog()

		resp := t.RequireResponse(blog.AllPosts())
		assert.Equal(t, 200, resp.Status)

		blog.SetAuthToken("test-token-123")
		resp = t.RequireResponse(blog.AllPosts())
		assert.Equal(t, 200, resp.Status)

		blog.RemoveAuthToken()
		resp = t.RequireResponse(blog.AllPosts())
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("token from login is usable as bearer token", func(t *T) {
		loginResp := t.RequireResponse(t.User().Login(t.Config().ValidLogin))
		assert.Equal(t, 200, loginResp.Status)
		token := t.RequireJSON(loginResp).GetByKey("token").StringValue()

		user := t.User()
		user.SetAuthToken(token)
		resp := t.RequireResponse(user.Users(1))
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("content type declares a charset", func(t *T) {
		resp := t.RequireResponse(t.Blog().AllPosts())
		assert.Equal(t, 200, resp.Status)

		contentType := strings.ToLower(resp.Headers.Get("Content-Type"))
		assert.Contains(t, contentType, "application/json")
		assert.Contains(t, contentType, "charset", "Content-Type should declare a charset: %s", contentType)
	})

	t.Run("SQL injection in query parameters is harmless", func(t *T) {
		payloads := []string{
			"1'; DROP TABLE users; --",
			"1' OR '1'='1",
			"1 UNION SELECT * FROM users",
			"'; DELETE FROM posts; --",
		}
		for _, payload := range payloads {
			resp := t.RequireResponse(t.Blog().Get("/posts", url.Values{"userId": {payload}}))
			assert.Contains(t, []int{200, 400, 404}, resp.Status, "status for hostile userId %q", payload)

			// The service must not leak its internals back to the caller.
			lower := strings.ToLower(string(resp.Body))
			for _, keyword := range []string{"sql", "syntax error", "database error"} {
				assert.NotContains(t, lower, keyword, "response to %q leaks internals", payload)
			}
		}
	})

	t.Run("XSS payloads come back as inert text", func(t *T) {
		payloads := []string{
			"<script>alert('hello')</script>",
			"javascript:alert('hello')",
			"<img src=x onerror=alert('hello')>",
		}
		for _, payload := range payloads {
			data := ldvalue.ObjectBuild().
				Set("title", ldvalue.String(payload)).
				Set("body", ldvalue.String("body with "+payload)).
				Set("userId", ldvalue.Int(1)).
				Build()
			resp := t.RequireResponse(t.Blog().CreatePost(data))
			assert.Equal(t, 201, resp.Status)

			created := t.RequireJSON(resp)
			assert.Equal(t, payload, created.GetByKey("title").StringValue(),
				"payload should be stored as plain text, not interpreted")
			assert.Contains(t, strings.ToLower(resp.Headers.Get("Content-Type")), "application/json",
				"echoed payload must come back as JSON, never as a renderable document")
		}
	})

	t.Run("input length validation", func(t *T) {
		scenarios := []struct {
			title       string
			body        string
			description string
		}{
			{strings.Repeat("A", 10000), "normal body", "10KB title"},
			{"normal title", strings.Repeat("B", 100000), "100KB body"},
			{"", "", "empty title and body"},
		}
		for _, s := range scenarios {
			data := ldvalue.ObjectBuild().
				Set("title", ldvalue.String(s.title)).
				Set("body", ldvalue.String(s.body)).
				Set("userId", ldvalue.Int(1)).
				Build()
			resp := t.RequireResponse(t.Blog().CreatePost(data))
			assert.Contains(t, []int{200, 201, 400, 413}, resp.Status, s.description)
			t.Debug("%s got status %d in %.2fms", s.description, resp.Status, resp.ElapsedMS)
		}
	})

	t.Run("rapid requests are not throttled into failure", func(t *T) {
		const attempts = 20
		successes := 0
		throttled := false
		for i := 0; i < attempts; i++ {
			resp, err := t.Blog().Post(1)
			if err != nil {
				continue
			}
			switch resp.Status {
			case 200:
				successes++
			case 429:
				throttled = true
			}
		}
		t.Debug("rapid requests: %d/%d succeeded, throttled=%v", successes, attempts, throttled)
		assert.GreaterOrEqual(t, successes, attempts*8/10,
			"too many rapid sequential requests failed (%d/%d)", successes, attempts)
	})

	t.Run("large payloads are handled", func(t *T) {
		for _, size := range []int{1000, 10000, 50000} {
			data := ldvalue.ObjectBuild().
				Set("title", ldvalue.String("Large payload")).
				Set("body", ldvalue.String(strings.Repeat("X", size))).
				Set("userId", ldvalue.Int(1)).
				Build()
			resp, err := t.Blog().CreatePost(data)
			if err != nil {
				// A timeout on a very large payload is acceptable, but it must
				// still surface as our one transport error kind.
				var te *apiclient.TransportError
				assert.ErrorAs(t, err, &te, "%d byte payload", size)
				continue
			}
			assert.Contains(t, []int{200, 201, 400, 413, 414}, resp.Status, "%d byte payload", size)
			t.Debug("%d byte payload got status %d in %.2fms", size, resp.Status, resp.ElapsedMS)
		}
	})
}
