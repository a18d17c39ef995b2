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

// KVPut writes body to key and returns the agent's decoded JSON reply
// (the agent replies with the literal boolean true on success).
func (c *Client) KVPut(ctx context.Context, key string, body []byte) (interface{}, error) {
	resp, err := c.do(ctx, transport.Put, "/v1/kv/"+key, body, nil, isStatus(200))
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp.Payload)
}

// KVGet reads key and returns the agent's decoded JSON reply (an array
// of KV entry objects, each with a base64-encoded Value).
func (c *Client) KVGet(ctx context.Context, key string) (interface{}, error) {
	resp, err := c.do(ctx, transport.Get, "/v1/kv/"+key, nil, nil, isStatus(200))
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp.Payload)
}

// KVDelete removes key.
func (c *Client) KVDelete(ctx context.Context, key string) error {
	_, err := c.do(ctx, transport.Delete, "/v1/kv/"+key, nil, nil, isStatus(200))
	return err
}

func decodeJSON(payload []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	return v, nil
}
