package apiclient

import (
	"net/http"
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand renders a request as a copy-pasteable curl command line, for debug
// output.
func curlCommand(method, url string, headers http.Header, body []byte) string {
	var b commandBuilder
	b.add("curl", "-X", method)
	for name, values := range headers {
		for _, v := range values {
			b.add("-H", name+": "+v)
		}
	}
	if body != nil {
		b.add("--data", string(body))
	}
	b.add(url)
	return b.String()
}
