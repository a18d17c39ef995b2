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

// Service is the identity and health-check configuration of a single
// service instance as announced to the agent.
//
// The announce key for a Service is the (ID, Name) pair; the Announcer
// uses it to deduplicate Announce Units. Two services differing only in
// Tags collide on the same unit.
type Service struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Check   *Check
}

// CheckID returns the check id the agent exposes for this service, and
// whether the service has one at all. At least one of ID/Name must be
// present for a check id to exist.
func (s Service) CheckID() (string, bool) {
	switch {
	case s.ID != "":
		return "service:" + s.ID, true
	case s.Name != "":
		return "service:" + s.Name, true
	default:
		return "", false
	}
}

// AnnounceKey identifies the Announce Unit this Service belongs to.
type AnnounceKey struct {
	ID   string
	Name string
}

// Key returns s's announce key.
func (s Service) Key() AnnounceKey {
	return AnnounceKey{ID: s.ID, Name: s.Name}
}

// wireServiceOut is the shape emitted to the agent. Note the lowercase
// "check" key: every other field is PascalCase, but the Consul agent API
// accepts "check" in lowercase and a caller already depends on that
// spelling, so we emit it as-is rather than "fixing" it to Check.
type wireServiceOut struct {
	ID      string     `json:"ID,omitempty"`
	Name    string     `json:"Name,omitempty"`
	Tags    []string   `json:"Tags,omitempty"`
	Port    int        `json:"Port,omitempty"`
	Address string     `json:"Address,omitempty"`
	Check   *wireCheck `json:"check,omitempty"`
}

// wireServiceIn is the shape accepted when decoding a service back out of
// an agent response (see LoadService and the `services` discovery path).
type wireServiceIn struct {
	ID      string   `json:"ID"`
	Name    string   `json:"Name"`
	Port    int      `json:"Port"`
	Tags    []string `json:"Tags"`
	Address string   `json:"Address"`
}

// DumpService encodes a Service for PUT /v1/agent/service/register.
func DumpService(s Service) ([]byte, error) {
	out := wireServiceOut{
		ID:      s.ID,
		Name:    s.Name,
		Tags:    s.Tags,
		Port:    s.Port,
		Address: s.Address,
	}
	if s.Check != nil {
		out.Check = &wireCheck{
			TTL:                            s.Check.EffectiveTTL(),
			DeregisterCriticalServiceAfter: s.Check.EffectiveDeregisterCriticalServiceAfter(),
		}
	}
	return json.Marshal(out)
}

// LoadService decodes a Service from its wire form. name is the name the
// caller searched for (or nil/"" when there is none); it is used as the
// fallback for a missing Name field. Tags default to an empty, non-nil
// slice so callers never have to nil-check it.
func LoadService(name string, data []byte) (Service, error) {
	var w wireServiceIn
	if err := json.Unmarshal(data, &w); err != nil {
		return Service{}, err
	}

	svcName := w.Name
	if svcName == "" {
		svcName = name
	}

	tags := w.Tags
	if tags == nil {
		tags = []string{}
	}

	return Service{
		ID:      w.ID,
		Name:    svcName,
		Address: w.Address,
		Port:    w.Port,
		Tags:    tags,
	}, nil
}
