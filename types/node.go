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

// Node is the agent-reported peer a Service is registered on.
type Node struct {
	ID              string
	Node            string
	Address         string
	TaggedAddresses map[string]string
}

type wireNode struct {
	ID              string            `json:"ID,omitempty"`
	Node            string            `json:"Node,omitempty"`
	Address         string            `json:"Address,omitempty"`
	TaggedAddresses map[string]string `json:"TaggedAddresses,omitempty"`
}

// DumpNode encodes a Node for the wire.
func DumpNode(n Node) ([]byte, error) {
	return json.Marshal(wireNode{
		ID:              n.ID,
		Node:            n.Node,
		Address:         n.Address,
		TaggedAddresses: n.TaggedAddresses,
	})
}

// LoadNode decodes a Node from its wire form.
func LoadNode(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return Node{}, err
	}
	return Node{
		ID:              w.ID,
		Node:            w.Node,
		Address:         w.Address,
		TaggedAddresses: w.TaggedAddresses,
	}, nil
}

// DiscoveryEntry is one element of a `services` discovery response: the
// node the service is registered on, the service itself (with its
// Address already falling back to Node.Address when empty), and the
// status of its TTL check, if the discovery reply carried one.
type DiscoveryEntry struct {
	Node    Node
	Service Service
	Status  *Status
}
