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
	"errors"
	"fmt"

	"github.com/hashicorp/consul-announce/transport"
)

// ErrNotFound is returned by SessionInfo when the agent reports no such
// session, and by CheckUpdate when the Service has no check id. A missing
// KV entry or check reported by a non-200 status is an *HTTPError instead.
var ErrNotFound = errors.New("agent: not found")

// HTTPError is returned when the transport round trip succeeded but the
// response failed the operation's success predicate (typically, but not
// always, "status == 200").
type HTTPError struct {
	Status  int
	Headers []transport.Pair
	Payload []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("agent: unexpected status %d", e.Status)
}

// classify turns a transport result into the Client's error taxonomy.
// ok is the success predicate for this operation; most endpoints use
// isStatus(200).
func classify(resp *transport.Response, err error, ok func(*transport.Response) bool) (*transport.Response, error) {
	if err != nil {
		return nil, err // already a *transport.Error
	}
	if !ok(resp) {
		return nil, &HTTPError{Status: resp.Status, Headers: resp.Headers, Payload: resp.Payload}
	}
	return resp, nil
}

func isStatus(status int) func(*transport.Response) bool {
	return func(r *transport.Response) bool { return r.Status == status }
}
