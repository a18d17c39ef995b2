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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendParamsPreservesExistingQuery(t *testing.T) {
	got := appendParams("http://a/v1/kv/x?dc=dc1", []Pair{{Name: "token", Value: "secret"}})
	require.Equal(t, "http://a/v1/kv/x?dc=dc1&token=secret", got)
}

func TestAppendParamsNoExistingQuery(t *testing.T) {
	got := appendParams("http://a/v1/kv/x", []Pair{{Name: "token", Value: "secret"}})
	require.Equal(t, "http://a/v1/kv/x?token=secret", got)
}

func TestAppendParamsValueless(t *testing.T) {
	got := appendParams("http://a/v1/health/service/web", []Pair{{Name: "passing"}})
	require.Equal(t, "http://a/v1/health/service/web?passing", got)
}

func TestDoGetOmitsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Zero(t, r.ContentLength)
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := New(Config{})
	resp, err := tr.Do(context.Background(), Get, srv.URL, nil, []byte(`should-be-ignored`), Options{})
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)
	require.Equal(t, `{"ok":true}`, resp.Text)
}

func TestDoDisablesRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	tr := New(Config{})
	resp, err := tr.Do(context.Background(), Get, srv.URL, nil, nil, Options{})
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.Status)
}

func TestDecodeTextCharsets(t *testing.T) {
	require.Equal(t, "café", decodeText("text/plain; charset=utf-8", []byte("café")))
	require.Equal(t, "café", decodeText("application/json", []byte("café")))
	// 0xE9 is "é" in Latin-1.
	require.Equal(t, "café", decodeText("text/plain; charset=iso-8859-1", []byte{'c', 'a', 'f', 0xE9}))
}

func TestHeaderLookupCaseInsensitive(t *testing.T) {
	v, ok := Header([]Pair{{Name: "Content-Type", Value: "application/json"}}, "content-type")
	require.True(t, ok)
	require.Equal(t, "application/json", v)
}
