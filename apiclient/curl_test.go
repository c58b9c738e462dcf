package apiclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurlCommandQuotesArguments(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer abc 123")

	cmd := curlCommand("POST", "https://example.test/posts?userId=1", headers,
		[]byte(`{"title":"x"}`))

	assert.Contains(t, cmd, "curl -X POST")
	assert.Contains(t, cmd, `'Authorization: Bearer abc 123'`)
	assert.Contains(t, cmd, `'{"title":"x"}'`)
	assert.Contains(t, cmd, "'https://example.test/posts?userId=1'")
}

func TestCurlCommandOmitsBodyWhenAbsent(t *testing.T) {
	cmd := curlCommand("GET", "https://example.test/posts", http.Header{}, nil)
	assert.Equal(t, "curl -X GET https://example.test/posts", cmd)
}
