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

import "encoding/json"

// Default durations applied when a Check omits them.
const (
	DefaultTTL                       = "10s"
	DefaultDeregisterCriticalTimeout = "10m"
)

// Check describes a TTL-based health check attached to a Service. The
// agent parses the duration strings itself; the only one we ever parse
// locally is TTL, to derive a tick interval (see announce.BaseTick).
type Check struct {
	TTL                            string
	DeregisterCriticalServiceAfter string
}

// EffectiveTTL returns c.TTL, or DefaultTTL if it is unset.
func (c Check) EffectiveTTL() string {
	if c.TTL == "" {
		return DefaultTTL
	}
	return c.TTL
}

// EffectiveDeregisterCriticalServiceAfter returns c.DeregisterCriticalServiceAfter,
// or DefaultDeregisterCriticalTimeout if it is unset.
func (c Check) EffectiveDeregisterCriticalServiceAfter() string {
	if c.DeregisterCriticalServiceAfter == "" {
		return DefaultDeregisterCriticalTimeout
	}
	return c.DeregisterCriticalServiceAfter
}

type wireCheck struct {
	TTL                            string `json:"TTL,omitempty"`
	DeregisterCriticalServiceAfter string `json:"DeregisterCriticalServiceAfter,omitempty"`
}

// DumpCheck encodes a Check for the wire, filling in defaults for any
// omitted duration so the agent always receives explicit values.
func DumpCheck(c Check) ([]byte, error) {
	return json.Marshal(wireCheck{
		TTL:                            c.EffectiveTTL(),
		DeregisterCriticalServiceAfter: c.EffectiveDeregisterCriticalServiceAfter(),
	})
}

// LoadCheck decodes a Check from its wire form. Fields absent from the
// payload are left empty; callers needing the effective value should use
// EffectiveTTL/EffectiveDeregisterCriticalServiceAfter.
func LoadCheck(data []byte) (Check, error) {
	var w wireCheck
	if err := json.Unmarshal(data, &w); err != nil {
		return Check{}, err
	}
	return Check{
		TTL:                            w.TTL,
		DeregisterCriticalServiceAfter: w.DeregisterCriticalServiceAfter,
	}, nil
}
