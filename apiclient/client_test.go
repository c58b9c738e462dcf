package apiclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/restcheck/rest-api-tests/config"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func testConfig(serverURL string) config.Config {
	cfg := config.Default()
	cfg.BlogAPIBaseURL = serverURL
	cfg.UserAPIBaseURL = serverURL
	cfg.RequestTimeout = time.Second * 5
	return cfg
}

func recordingServer(status int) (*httptest.Server, <-chan httphelpers.HTTPRequestInfo) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(status))
	return httptest.NewServer(handler), requestsCh
}

func requireRequest(t *testing.T, requestsCh <-chan httphelpers.HTTPRequestInfo) httphelpers.HTTPRequestInfo {
	select {
	case info := <-requestsCh:
		return info
	case <-time.After(time.Second):
		require.Fail(t, "timed out waiting for the server to receive a request")
		return httphelpers.HTTPRequestInfo{}
	}
}

func TestConstructionDoesNoNetworkIO(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()

	_ = New(server.URL, Options{})
	_ = NewBlogClient(testConfig(server.URL), Options{})
	_ = NewUserClient(testConfig(server.URL), Options{})

	assert.Equal(t, 0, len(requestsCh), "constructing clients should not send any requests")
}

func TestDefaultHeadersAndNoBodyOnGet(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()

	client := New(server.URL+"/api", Options{})
	resp, err := client.Get("/widgets/7", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)

	info := requireRequest(t, requestsCh)
	assert.Equal(t, "GET", info.Request.Method)
	assert.Equal(t, "/api/widgets/7", info.Request.URL.Path)
	assert.Equal(t, "application/json", info.Request.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", info.Request.Header.Get("Accept"))
	assert.Empty(t, info.Body)
}

func TestElapsedTimeIsSetOnEveryResponse(t *testing.T) {
	for _, status := range []int{200, 404, 500} {
		server, _ := recordingServer(status)

		client := New(server.URL, Options{})
		resp, err := client.Get("/things", nil)
		require.NoError(t, err)
		assert.Equal(t, status, resp.Status)
		assert.Greater(t, resp.ElapsedMS, 0.0, "elapsed time missing for status %d", status)

		server.Close()
	}
}

func TestNonSuccessStatusIsNotAnError(t *testing.T) {
	server, _ := recordingServer(503)
	defer server.Close()

	client := New(server.URL, Options{})
	resp, err := client.Get("/things", nil)
	require.NoError(t, err, "a 5xx status must come back as a normal response")
	assert.Equal(t, 503, resp.Status)
}

func TestAuthTokenIsSentAndRemoved(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()

	client := New(server.URL, Options{})

	client.SetAuthToken("X")
	_, err := client.Get("/things", nil)
	require.NoError(t, err)
	info := requireRequest(t, requestsCh)
	assert.Equal(t, "Bearer X", info.Request.Header.Get("Authorization"))

	client.RemoveAuthToken()
	_, err = client.Get("/things", nil)
	require.NoError(t, err)
	info = requireRequest(t, requestsCh)
	assert.Empty(t, info.Request.Header.Values("Authorization"))

	// removing again is a no-op
	client.RemoveAuthToken()
	_, err = client.Get("/things", nil)
	require.NoError(t, err)
	info = requireRequest(t, requestsCh)
	assert.Empty(t, info.Request.Header.Values("Authorization"))
}

func TestStructuredAndSugarBodiesAreByteIdentical(t *testing.T) {
	server, requestsCh := recordingServer(201)
	defer server.Close()

	client := New(server.URL, Options{})
	data := ldvalue.ObjectBuild().Set("name", ldvalue.String("Ada")).Build()

	_, err := client.Post("/users", data)
	require.NoError(t, err)
	viaSugar := requireRequest(t, requestsCh)

	_, err = client.Request("POST", "/users", RequestOpts{JSON: data})
	require.NoError(t, err)
	viaRequest := requireRequest(t, requestsCh)

	assert.Equal(t, string(viaSugar.Body), string(viaRequest.Body))
	assert.Equal(t, viaSugar.Request.URL.Path, viaRequest.Request.URL.Path)
}

func TestServiceClientOperationsAreOneLineDelegations(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()
	cfg := testConfig(server.URL)

	blog := NewBlogClient(cfg, Options{})
	data := cfg.TestPostData

	_, err := blog.CreatePost(data)
	require.NoError(t, err)
	viaNamed := requireRequest(t, requestsCh)

	_, err = blog.Client.Post("/posts", data)
	require.NoError(t, err)
	viaVerb := requireRequest(t, requestsCh)

	assert.Equal(t, "POST", viaNamed.Request.Method)
	assert.Equal(t, viaVerb.Request.URL.Path, viaNamed.Request.URL.Path)
	assert.Equal(t, string(viaVerb.Body), string(viaNamed.Body))

	_, err = blog.PostsByUser(3)
	require.NoError(t, err)
	info := requireRequest(t, requestsCh)
	assert.Equal(t, "/posts", info.Request.URL.Path)
	assert.Equal(t, "userId=3", info.Request.URL.RawQuery)
}

func TestUserClientSendsOnlyAcceptByDefault(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()

	user := NewUserClient(testConfig(server.URL), Options{})
	_, err := user.Users(2)
	require.NoError(t, err)

	info := requireRequest(t, requestsCh)
	assert.Equal(t, "/users", info.Request.URL.Path)
	assert.Equal(t, "page=2", info.Request.URL.RawQuery)
	assert.Equal(t, "application/json", info.Request.Header.Get("Accept"))
	assert.Empty(t, info.Request.Header.Values("Content-Type"))
}

func TestPerCallHeadersOverrideDefaults(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Request("GET", "/things", RequestOpts{
		Headers: map[string]string{"Accept": "text/plain", "X-Extra": "yes"},
	})
	require.NoError(t, err)

	info := requireRequest(t, requestsCh)
	assert.Equal(t, "text/plain", info.Request.Header.Get("Accept"))
	assert.Equal(t, "application/json", info.Request.Header.Get("Content-Type"))
	assert.Equal(t, "yes", info.Request.Header.Get("X-Extra"))
}

func TestTimeoutBecomesTransportErrorWithoutRetry(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Millisecond * 500)
		}))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := New(server.URL, Options{Timeout: time.Millisecond * 20})
	_, err := client.Get("/slow", nil)
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr, "error should be wrapped as a TransportError")

	time.Sleep(time.Millisecond * 600) // let the slow handler finish
	assert.Equal(t, 1, len(requestsCh), "a timeout must not be retried")
}

func TestConnectionRefusedBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	server.Close() // nothing is listening any more

	client := New(server.URL, Options{})
	_, err := client.Get("/things", nil)
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestResponseJSONParsing(t *testing.T) {
	expected := map[string]interface{}{"id": 7, "name": "thing"}
	server := httptest.NewServer(httphelpers.HandlerWithJSONResponse(expected, nil))
	defer server.Close()

	client := New(server.URL, Options{})
	resp, err := client.Get("/things/7", nil)
	require.NoError(t, err)

	body, err := resp.JSON()
	require.NoError(t, err)
	assert.Equal(t, 7, body.GetByKey("id").IntValue())
	assert.Equal(t, "thing", body.GetByKey("name").StringValue())
}

func TestResponseJSONParsingOfMalformedBody(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithResponse(200, nil, []byte("not json")))
	defer server.Close()

	client := New(server.URL, Options{})
	resp, err := client.Get("/things", nil)
	require.NoError(t, err)

	_, err = resp.JSON()
	assert.Error(t, err)
}

func TestQueryParamsAreEncoded(t *testing.T) {
	server, requestsCh := recordingServer(200)
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Get("/search", url.Values{"q": {"a b&c"}})
	require.NoError(t, err)

	info := requireRequest(t, requestsCh)
	assert.Equal(t, "a b&c", info.Request.URL.Query().Get("q"))
}

func TestRecorderReceivesEveryCall(t *testing.T) {
	server, _ := recordingServer(404)
	defer server.Close()

	var received []RequestRecord
	rec := recorderFunc(func(r RequestRecord) { received = append(received, r) })

	client := New(server.URL, Options{Recorder: rec})
	_, err := client.Get("/missing", nil)
	require.NoError(t, err)

	badClient := New("http://127.0.0.1:1", Options{Recorder: rec, Timeout: time.Millisecond * 200})
	_, err = badClient.Get("/unreachable", nil)
	require.Error(t, err)

	require.Len(t, received, 2)
	assert.Equal(t, 404, received[0].Status)
	assert.Greater(t, received[0].ElapsedMS, 0.0)
	assert.NotEmpty(t, received[1].Error)
}

type recorderFunc func(RequestRecord)

func (f recorderFunc) Record(rec RequestRecord) { f(rec) }
