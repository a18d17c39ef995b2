/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transport

import (
	"bytes"
	"context"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultOverallTimeout bounds an entire round trip, connect through
	// body read.
	DefaultOverallTimeout = 30 * time.Second

	// DefaultConnectTimeout bounds only the TCP dial; the TLS handshake
	// has its own timeout from the pooled base transport.
	DefaultConnectTimeout = 5 * time.Second
)

// HTTPTransport is the default Transport: a pooled net/http client with
// no automatic redirect following, configurable connect/overall
// timeouts, and charset-aware text decoding of the response body.
//
// It is safe for concurrent use and is meant to be shared across every
// Announce Unit, since the Agent Client and Transport are both treated
// as immutable, freely shareable collaborators (see agent.Client).
type HTTPTransport struct {
	client *http.Client
}

// New builds an HTTPTransport. A zero Config uses the documented
// defaults (30s overall, 5s connect).
func New(cfg Config) *HTTPTransport {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = DefaultConnectTimeout
	}
	overallTimeout := cfg.OverallTimeout
	if overallTimeout == 0 {
		overallTimeout = DefaultOverallTimeout
	}

	base := cleanhttp.DefaultPooledTransport()
	base.DialContext = (&net.Dialer{
		Timeout: connectTimeout,
	}).DialContext

	return &HTTPTransport{
		client: &http.Client{
			Transport: base,
			Timeout:   overallTimeout,
			// The Agent Client and its callers need to see redirect
			// responses as ordinary results (e.g. a misconfigured
			// agent address), not have them silently followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Config configures an HTTPTransport. Zero values fall back to the
// package defaults.
type Config struct {
	ConnectTimeout time.Duration
	OverallTimeout time.Duration
}

func appendParams(rawURL string, params []Pair) string {
	if len(params) == 0 {
		return rawURL
	}
	var b strings.Builder
	b.WriteString(rawURL)
	if strings.Contains(rawURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		if p.Value != "" {
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(p.Value))
		}
	}
	return b.String()
}

func bodyAllowed(method Method) bool {
	switch method {
	case Get, Head:
		return false
	default:
		return true
	}
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, method Method, rawURL string, headers []Pair, body []byte, opts Options) (*Response, error) {
	finalURL := appendParams(rawURL, opts.Params)

	var reader *bytes.Reader
	if bodyAllowed(method) && body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), finalURL, reader)
	if err != nil {
		return nil, DriverError(err)
	}
	for _, h := range headers {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, TimeoutError()
		}
		if isConnectError(err) {
			return nil, ConnectError()
		}
		return nil, DriverError(err)
	}
	defer resp.Body.Close()

	payload, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, DriverError(err)
	}

	var respHeaders []Pair
	for name, values := range resp.Header {
		for _, v := range values {
			respHeaders = append(respHeaders, Pair{Name: name, Value: v})
		}
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: respHeaders,
		Payload: payload,
		Text:    decodeText(resp.Header.Get("Content-Type"), payload),
	}, nil
}

func isConnectError(err error) bool {
	if uerr, ok := err.(*url.Error); ok {
		err = uerr.Err
	}
	opErr, ok := err.(*net.OpError)
	return ok && opErr.Op == "dial"
}

// decodeText decodes payload to a string using the charset implied by
// contentType. utf-8/utf8/application/json decode as plain UTF-8;
// iso-8859-1 is transcoded from Latin-1; anything else passes the bytes
// through unchanged.
func decodeText(contentType string, payload []byte) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "iso-8859-1"):
		runes := make([]rune, len(payload))
		for i, b := range payload {
			runes[i] = rune(b)
		}
		return string(runes)
	default:
		return string(payload)
	}
}
