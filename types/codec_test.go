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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServiceRoundTrip(t *testing.T) {
	svc := Service{
		ID:      "foobar",
		Name:    "foobar",
		Address: "10.0.0.1",
		Port:    8080,
		Tags:    []string{"primary"},
		Check:   &Check{TTL: "30s"},
	}

	data, err := DumpService(svc)
	require.NoError(t, err)

	loaded, err := LoadService("foobar", data)
	require.NoError(t, err)

	require.Equal(t, svc.ID, loaded.ID)
	require.Equal(t, svc.Name, loaded.Name)
	require.Equal(t, svc.Address, loaded.Address)
	require.Equal(t, svc.Port, loaded.Port)
	require.Equal(t, svc.Tags, loaded.Tags)
}

func TestServiceDumpUsesLowercaseCheckKey(t *testing.T) {
	data, err := DumpService(Service{ID: "x", Check: &Check{}})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	_, hasLower := raw["check"]
	_, hasUpper := raw["Check"]
	require.True(t, hasLower, "expected lowercase \"check\" key, got %s", data)
	require.False(t, hasUpper, "did not expect PascalCase \"Check\" key, got %s", data)
}

func TestServiceDumpOmitsAbsentCheck(t *testing.T) {
	data, err := DumpService(Service{ID: "x", Name: "x"})
	require.NoError(t, err)
	require.NotContains(t, string(data), "check")
}

func TestLoadServiceDefaultTags(t *testing.T) {
	svc, err := LoadService("", []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, []string{}, svc.Tags)

	svc, err = LoadService("", []byte(`{"Tags":["a","b"]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, svc.Tags)
}

func TestLoadServiceFallbackName(t *testing.T) {
	svc, err := LoadService("my-service", []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, "my-service", svc.Name)

	svc, err = LoadService("my-service", []byte(`{"Name":"explicit"}`))
	require.NoError(t, err)
	require.Equal(t, "explicit", svc.Name)
}

func TestCheckID(t *testing.T) {
	id, ok := Service{}.CheckID()
	require.False(t, ok)
	require.Empty(t, id)

	id, ok = Service{ID: "abc"}.CheckID()
	require.True(t, ok)
	require.Equal(t, "service:abc", id)

	id, ok = Service{Name: "xyz"}.CheckID()
	require.True(t, ok)
	require.Equal(t, "service:xyz", id)

	id, ok = Service{ID: "abc", Name: "xyz"}.CheckID()
	require.True(t, ok)
	require.Equal(t, "service:abc", id, "id takes precedence over name")
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{Passing(), Warning("slow"), Critical("down")} {
		data, err := DumpStatus(s)
		require.NoError(t, err)

		loaded, err := LoadStatus(data)
		require.NoError(t, err)
		require.Equal(t, s, loaded)
	}
}

func TestStatusLegacyWarningTypo(t *testing.T) {
	loaded, err := LoadStatus([]byte(`{"Status":"warinig","Output":null}`))
	require.NoError(t, err)
	require.Equal(t, StatusWarning, loaded.Variant)
}

func TestStatusOutputNullWhenAbsent(t *testing.T) {
	data, err := DumpStatus(Passing())
	require.NoError(t, err)
	require.JSONEq(t, `{"Status":"passing","Output":null}`, string(data))
}

func TestNodeRoundTrip(t *testing.T) {
	n := Node{
		ID:      "c1",
		Node:    "node-1",
		Address: "10.0.0.5",
		TaggedAddresses: map[string]string{
			"lan": "10.0.0.5",
			"wan": "54.0.0.5",
		},
	}
	data, err := DumpNode(n)
	require.NoError(t, err)

	loaded, err := LoadNode(data)
	require.NoError(t, err)
	require.Equal(t, n, loaded)
}

func TestCheckRoundTrip(t *testing.T) {
	c := Check{TTL: "15s", DeregisterCriticalServiceAfter: "1h"}
	data, err := DumpCheck(c)
	require.NoError(t, err)

	loaded, err := LoadCheck(data)
	require.NoError(t, err)
	require.Equal(t, c, loaded)
}

func TestCheckDumpAppliesDefaults(t *testing.T) {
	data, err := DumpCheck(Check{})
	require.NoError(t, err)
	require.JSONEq(t, `{"TTL":"10s","DeregisterCriticalServiceAfter":"10m"}`, string(data))
}
