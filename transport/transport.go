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

// Package transport is the function-shaped HTTP client seam the Agent
// Client is built on. It knows nothing about Consul, service
// registration, or JSON bodies beyond the bytes it is handed: it issues
// a method+URL+headers+body+query and hands back a status/headers/body
// triple or a classified error. This is what lets callers swap in an
// in-memory fake (see agent's tests) without any dynamic dispatch on a
// class hierarchy.
package transport

import (
	"context"
)

// Method is an HTTP verb the Transport understands.
type Method string

const (
	Get    Method = "GET"
	Put    Method = "PUT"
	Post   Method = "POST"
	Delete Method = "DELETE"
	Head   Method = "HEAD"
)

// Pair is an ordered name/value pair, used for both headers and query
// parameters so that callers can append without clobbering.
type Pair struct {
	Name  string
	Value string
}

// Options carries the per-request extras a Transport call accepts beyond
// method/url/headers/body.
type Options struct {
	// Params is appended to url's existing query string. Pre-existing
	// keys are preserved; Params entries are always appended with "&",
	// never used to replace an existing key.
	Params []Pair
}

// Response is a successful round trip.
type Response struct {
	Status  int
	Headers []Pair
	Payload []byte
	// Text is Payload decoded to a string using the charset implied by
	// the response's Content-Type header (see decodeText).
	Text string
}

// Error is the failure shape a Transport returns instead of a Response.
// Exactly one of Connect, Timeout, or Driver is set.
type Error struct {
	Connect bool
	Timeout bool
	Driver  error
}

func (e *Error) Error() string {
	switch {
	case e.Connect:
		return "transport: connect error"
	case e.Timeout:
		return "transport: timeout"
	case e.Driver != nil:
		return "transport: " + e.Driver.Error()
	default:
		return "transport: unknown error"
	}
}

// ConnectError builds an *Error classified as a connection failure.
func ConnectError() *Error { return &Error{Connect: true} }

// TimeoutError builds an *Error classified as a deadline overrun.
func TimeoutError() *Error { return &Error{Timeout: true} }

// DriverError wraps an opaque lower-level failure.
func DriverError(err error) *Error { return &Error{Driver: err} }

// Header returns the value of the first header pair matching name,
// case-insensitively, and whether one was found.
func Header(headers []Pair, name string) (string, bool) {
	for _, h := range headers {
		if equalFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Transport issues a single HTTP request and returns exactly one result:
// a Response on success, or an *Error. It never retries internally;
// retry/backoff policy belongs to the caller (the Announce Unit), not the
// transport seam.
type Transport interface {
	Do(ctx context.Context, method Method, url string, headers []Pair, body []byte, opts Options) (*Response, error)
}
