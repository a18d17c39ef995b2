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

// Package agent is the typed wrapper over a Consul-style agent's HTTP
// API: service/check registration, discovery, sessions, and a KV
// surface. It is a pure translator between domain values (types.Service,
// types.Status, ...) and the transport.Transport seam, and it owns no
// retry/backoff policy of its own; that lives one layer up, in the
// Announce Unit.
package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hashicorp/consul-announce/transport"
	"github.com/hashicorp/consul-announce/types"
)

// Client holds the fixed identity of an agent connection: its endpoint,
// an optional ACL token, and the Transport used to reach it. A Client is
// immutable once built and is safe to share across every Announce Unit.
type Client struct {
	endpoint  string
	token     string
	transport transport.Transport
}

// New builds a Client talking to endpoint (e.g. "http://localhost:8500")
// through t, optionally authenticating with token.
func New(endpoint, token string, t transport.Transport) *Client {
	return &Client{endpoint: strings.TrimRight(endpoint, "/"), token: token, transport: t}
}

func (c *Client) url(path string) string {
	return c.endpoint + "/" + strings.TrimLeft(path, "/")
}

// withToken injects the client's ACL token into params, unless the
// caller already supplied one. An explicit caller-supplied token always
// wins.
func (c *Client) withToken(params []transport.Pair) []transport.Pair {
	if c.token == "" {
		return params
	}
	for _, p := range params {
		if p.Name == "token" {
			return params
		}
	}
	return append(append([]transport.Pair{}, params...), transport.Pair{Name: "token", Value: c.token})
}

func (c *Client) do(ctx context.Context, method transport.Method, path string, body []byte, params []transport.Pair, ok func(*transport.Response) bool) (*transport.Response, error) {
	headers := []transport.Pair{{Name: "Accept", Value: "application/json"}}
	if body != nil {
		headers = append(headers, transport.Pair{Name: "Content-Type", Value: "application/json"})
	}
	resp, err := c.transport.Do(ctx, method, c.url(path), headers, body, transport.Options{Params: c.withToken(params)})
	return classify(resp, err, ok)
}

// Ping checks that the agent is reachable and answering requests. It is
// used at startup to satisfy the requirement that an HTTP transport
// subsystem be available before any service is registered.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, transport.Get, "/v1/agent/self", nil, nil, isStatus(200))
	return err
}

// ServiceRegister registers (or re-registers) svc with the agent.
func (c *Client) ServiceRegister(ctx context.Context, svc types.Service) error {
	body, err := types.DumpService(svc)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, transport.Put, "/v1/agent/service/register", body, nil, isStatus(200))
	return err
}

// ServiceDeregister removes the service identified by id from the agent.
func (c *Client) ServiceDeregister(ctx context.Context, id string) error {
	_, err := c.do(ctx, transport.Post, "/v1/agent/service/deregister/"+id, nil, nil, isStatus(200))
	return err
}

// CheckUpdate sets the TTL check status for svc. It returns ErrNotFound
// if svc has no check id (see types.Service.CheckID).
func (c *Client) CheckUpdate(ctx context.Context, svc types.Service, status types.Status) error {
	checkID, ok := svc.CheckID()
	if !ok {
		return ErrNotFound
	}
	body, err := types.DumpStatus(status)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, transport.Put, "/v1/agent/check/update/"+checkID, body, nil, isStatus(200))
	return err
}

// Filters narrows a Services discovery query. Setting StatusPassing
// replaces every other accumulated filter rather than combining with
// them; this collapse is a preserved quirk of the filter encoding.
type Filters struct {
	Near          bool
	Tag           string
	DC            string
	StatusPassing bool
}

func (f Filters) params() []transport.Pair {
	if f.StatusPassing {
		return []transport.Pair{{Name: "passing"}}
	}
	var out []transport.Pair
	if f.Near {
		out = append(out, transport.Pair{Name: "near", Value: "_agent"})
	}
	if f.Tag != "" {
		out = append(out, transport.Pair{Name: "tag", Value: f.Tag})
	}
	if f.DC != "" {
		out = append(out, transport.Pair{Name: "dc", Value: f.DC})
	}
	return out
}

type wireDiscoveryEntry struct {
	Node    json.RawMessage  `json:"Node"`
	Service json.RawMessage  `json:"Service"`
	Checks  []wireCheckEntry `json:"Checks"`
}

type wireCheckEntry struct {
	CheckID string
	Status  string
}

// Services performs a health/service discovery query for name: the
// service's Address falls back to the Node's Address when empty, and at
// most one Checks entry (the one matching the service's own check id) is
// surfaced as a Status.
func (c *Client) Services(ctx context.Context, name string, filters Filters) ([]types.DiscoveryEntry, error) {
	resp, err := c.do(ctx, transport.Get, "/v1/health/service/"+name, nil, filters.params(), isStatus(200))
	if err != nil {
		return nil, err
	}

	var raw []wireDiscoveryEntry
	if err := json.Unmarshal(resp.Payload, &raw); err != nil {
		return nil, err
	}

	entries := make([]types.DiscoveryEntry, 0, len(raw))
	for _, r := range raw {
		node, err := types.LoadNode(r.Node)
		if err != nil {
			return nil, err
		}
		svc, err := types.LoadService(name, r.Service)
		if err != nil {
			return nil, err
		}
		if svc.Address == "" {
			svc.Address = node.Address
		}

		entry := types.DiscoveryEntry{Node: node, Service: svc}
		if checkID, ok := svc.CheckID(); ok {
			for _, ch := range r.Checks {
				if ch.CheckID != checkID {
					continue
				}
				wire, err := json.Marshal(struct {
					Status string `json:"Status"`
				}{Status: ch.Status})
				if err != nil {
					return nil, err
				}
				status, err := types.LoadStatus(wire)
				if err != nil {
					return nil, err
				}
				entry.Status = &status
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
