package apitests

import (
	"fmt"
	"sync"
	"time"

	"github.com/restcheck/rest-api-tests/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchmarkSamples = 3
const concurrentCallers = 5

// DoPerformanceTests covers round-trip timing of representative endpoints and
// behavior under concurrent callers. These are smoke-level checks against
// external services, so the thresholds are deliberately generous.
func DoPerformanceTests(t *T) {
	t.Run("response time benchmarks", func(t *T) {
		endpoints := []struct {
			endpoint    string
			description string
		}{
			{"/posts", "list all posts"},
			{"/posts/1", "single post"},
			{"/users", "list all users"},
			{"/users/1", "single user"},
			{"/posts/1/comments", "nested comments"},
		}

		for _, e := range endpoints {
			var total float64
			min, max := -1.0, 0.0
			for i := 0; i < benchmarkSamples; i++ {
				resp := t.RequireResponse(t.Blog().Get(e.endpoint, nil))
				require.Equal(t, 200, resp.Status, "%s: request failed", e.description)
				total += resp.ElapsedMS
				if min < 0 || resp.ElapsedMS < min {
					min = resp.ElapsedMS
				}
				if resp.ElapsedMS > max {
					max = resp.ElapsedMS
				}
			}
			mean := total / benchmarkSamples
			t.Debug("%s: mean %.2fms, min %.2fms, max %.2fms", e.description, mean, min, max)
			assert.Less(t, mean, t.Config().MaxResponseTime,
				"%s: mean response time over threshold", e.description)
		}
	})

	t.Run("concurrent callers with independent clients", func(t *T) {
		// The client is not made for shared concurrent use while its headers can
		// change, so each goroutine constructs its own instance.
		results := make([]apiclient.Response, concurrentCallers)
		errs := make([]error, concurrentCallers)

		var wg sync.WaitGroup
		for i := 0; i < concurrentCallers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				client := apiclient.NewBlogClient(t.Config(), t.ClientOptions())
				results[n], errs[n] = client.Post(n + 1)
			}(i)
		}
		wg.Wait()

		for i := 0; i < concurrentCallers; i++ {
			require.NoError(t, errs[i], "caller %d failed", i)
			assert.Equal(t, 200, results[i].Status, "caller %d got a bad status", i)
			post := t.RequireJSON(results[i])
			assert.Equal(t, i+1, post.GetByKey("id").IntValue(), "caller %d got the wrong post", i)
		}
	})

	t.Run("payload sizes are sane", func(t *T) {
		listResp := t.RequireResponse(t.Blog().AllPosts())
		require.Equal(t, 200, listResp.Status)

		singleResp := t.RequireResponse(t.Blog().Post(1))
		require.Equal(t, 200, singleResp.Status)

		assert.NotEmpty(t, singleResp.Body)
		assert.Greater(t, len(listResp.Body), len(singleResp.Body),
			"the full collection should be larger than one resource")
		t.Debug("list payload %d bytes, single payload %d bytes", len(listResp.Body), len(singleResp.Body))
	})

	t.Run("timing is attached to every sample", func(t *T) {
		for i := 1; i <= benchmarkSamples; i++ {
			resp := t.RequireResponse(t.Blog().Get(fmt.Sprintf("/posts/%d", i), nil))
			assert.Greater(t, resp.ElapsedMS, 0.0, "sample %d has no timing", i)
		}
	})

	t.Run("tight timeout still yields a single error kind", func(t *T) {
		// A timeout too short for a real round trip must surface as exactly one
		// TransportError, never a raw transport failure and never a retry.
		opts := t.ClientOptions()
		opts.Timeout = time.Nanosecond
		client := apiclient.NewBlogClient(t.Config(), opts)

		_, err := client.AllPosts()
		require.Error(t, err)
		var te *apiclient.TransportError
		assert.ErrorAs(t, err, &te)
	})
}
