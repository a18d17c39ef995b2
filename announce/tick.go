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
	"fmt"
	"strconv"

	"github.com/hashicorp/consul-announce/types"
)

// NoCheckBaseTick is the base tick applied to a Service with no Check:
// heartbeats are disabled, so the only remaining purpose of the tick is
// periodic re-registration.
const NoCheckBaseTick = 300_000

// MaxWait is the backoff ceiling: no Unit ever waits longer than this
// between retries.
const MaxWait = 300_000

// BaseTick derives the steady-state tick interval, in milliseconds, for
// svc. A Service with no Check ticks at NoCheckBaseTick with heartbeats
// disabled; otherwise the tick is derived from the Check's effective TTL.
func BaseTick(svc types.Service) (int64, error) {
	if svc.Check == nil {
		return NoCheckBaseTick, nil
	}
	ms, err := parseTTLMillis(svc.Check.EffectiveTTL())
	if err != nil {
		return 0, err
	}
	tick := ms / 5
	if tick < 50 {
		tick = 50
	}
	return tick, nil
}

// parseTTLMillis parses a duration string of the form <int><unit> where
// unit is one of "h", "m", "s", or empty (milliseconds).
func parseTTLMillis(ttl string) (int64, error) {
	if ttl == "" {
		return 0, fmt.Errorf("announce: empty ttl")
	}

	multiplier := int64(1)
	digits := ttl
	switch ttl[len(ttl)-1] {
	case 'h':
		multiplier = 3_600_000
		digits = ttl[:len(ttl)-1]
	case 'm':
		multiplier = 60_000
		digits = ttl[:len(ttl)-1]
	case 's':
		multiplier = 1_000
		digits = ttl[:len(ttl)-1]
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("announce: invalid ttl %q: %w", ttl, err)
	}
	return n * multiplier, nil
}

// NextWait doubles wait and caps it at MaxWait, per the backoff
// discipline: the k-th retry after a base tick T waits min(T*2^k, 300_000).
func NextWait(wait int64) int64 {
	doubled := wait * 2
	if doubled > MaxWait {
		return MaxWait
	}
	return doubled
}
