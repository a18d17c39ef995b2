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

package announce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashicorp/consul-announce/types"
)

func TestBaseTickBounds(t *testing.T) {
	cases := []struct {
		ttl  string
		want int64
	}{
		{"1h", 720_000},
		{"1m", 12_000},
		{"1s", 200},
		{"570", 114},
		{"100", 50}, // clamped
	}
	for _, c := range cases {
		tick, err := BaseTick(types.Service{Check: &types.Check{TTL: c.ttl}})
		require.NoError(t, err)
		require.Equal(t, c.want, tick)
		require.GreaterOrEqual(t, tick, int64(50))
	}
}

func TestBaseTickNoCheck(t *testing.T) {
	tick, err := BaseTick(types.Service{})
	require.NoError(t, err)
	require.Equal(t, int64(NoCheckBaseTick), tick)
}

func TestNextWaitDoublesAndCaps(t *testing.T) {
	wait := int64(200)
	for k := 1; k <= 3; k++ {
		wait = NextWait(wait)
		require.Equal(t, int64(200)<<uint(k), wait)
	}
	// Keep doubling until the cap kicks in.
	for i := 0; i < 20; i++ {
		wait = NextWait(wait)
	}
	require.Equal(t, int64(MaxWait), wait)
}
