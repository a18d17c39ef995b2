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

package agent

import (
	"context"
	"encoding/json"

	"github.com/hashicorp/consul-announce/transport"
)

// SessionOptions configures SessionCreate.
type SessionOptions struct {
	LockDelay string
	TTL       string
	Behavior  string
}

type wireSessionCreate struct {
	LockDelay string `json:"LockDelay,omitempty"`
	TTL       string `json:"TTL,omitempty"`
	Behavior  string `json:"Behavior,omitempty"`
}

// SessionCreate creates a session and returns its id.
func (c *Client) SessionCreate(ctx context.Context, opts SessionOptions) (string, error) {
	body, err := json.Marshal(wireSessionCreate{LockDelay: opts.LockDelay, TTL: opts.TTL, Behavior: opts.Behavior})
	if err != nil {
		return "", err
	}
	resp, err := c.do(ctx, transport.Put, "/v1/session/create", body, nil, isStatus(200))
	if err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"ID"`
	}
	if err := json.Unmarshal(resp.Payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// SessionRenew renews the session identified by id.
func (c *Client) SessionRenew(ctx context.Context, id string) error {
	_, err := c.do(ctx, transport.Put, "/v1/session/renew/"+id, nil, nil, isStatus(200))
	return err
}

// SessionDestroy destroys the session identified by id.
func (c *Client) SessionDestroy(ctx context.Context, id string) error {
	_, err := c.do(ctx, transport.Put, "/v1/session/destroy/"+id, nil, nil, isStatus(200))
	return err
}

// SessionInfo returns the raw session-info payload and the response
// headers (x-consul-* metadata lives there), or ErrNotFound if the
// session doesn't exist (the agent replies with a null or empty-array
// payload for an unknown session id rather than a 404).
func (c *Client) SessionInfo(ctx context.Context, id string) (json.RawMessage, []transport.Pair, error) {
	resp, err := c.do(ctx, transport.Get, "/v1/session/info/"+id, nil, nil, isStatus(200))
	if err != nil {
		return nil, nil, err
	}
	trimmed := trimJSONWhitespace(resp.Payload)
	if string(trimmed) == "null" || string(trimmed) == "[]" {
		return nil, nil, ErrNotFound
	}
	return resp.Payload, resp.Headers, nil
}

func trimJSONWhitespace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
