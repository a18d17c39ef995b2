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
	"fmt"
)

// Status variants. An older Consul revision spelled the "warning" variant
// "warinig", a plain typo. We accept it on decode for backward
// compatibility but never emit it.
const (
	StatusPassing  = "passing"
	StatusWarning  = "warning"
	StatusCritical = "critical"

	legacyWarningTypo = "warinig"
)

// Status is a TTL check's health value, with an optional opaque message.
type Status struct {
	Variant string
	Output  string
	// HasOutput distinguishes an explicit empty Output from no Output at
	// all, since the wire form can carry a JSON null.
	HasOutput bool
}

// Passing builds a Status with no output.
func Passing() Status { return Status{Variant: StatusPassing} }

// Warning builds a Status with the given output.
func Warning(output string) Status {
	return Status{Variant: StatusWarning, Output: output, HasOutput: true}
}

// Critical builds a Status with the given output.
func Critical(output string) Status {
	return Status{Variant: StatusCritical, Output: output, HasOutput: true}
}

type wireStatus struct {
	Status string  `json:"Status"`
	Output *string `json:"Output"`
}

func normalizeVariant(v string) (string, error) {
	switch v {
	case StatusPassing, StatusWarning, StatusCritical:
		return v, nil
	case legacyWarningTypo:
		return StatusWarning, nil
	default:
		return "", fmt.Errorf("types: unknown status variant %q", v)
	}
}

// DumpStatus encodes a Status for PUT /v1/agent/check/update/<check_id>.
func DumpStatus(s Status) ([]byte, error) {
	variant, err := normalizeVariant(s.Variant)
	if err != nil {
		return nil, err
	}
	w := wireStatus{Status: variant}
	if s.HasOutput {
		out := s.Output
		w.Output = &out
	}
	return json.Marshal(w)
}

// LoadStatus decodes a Status from its wire form.
func LoadStatus(data []byte) (Status, error) {
	var w wireStatus
	if err := json.Unmarshal(data, &w); err != nil {
		return Status{}, err
	}
	variant, err := normalizeVariant(w.Status)
	if err != nil {
		return Status{}, err
	}
	s := Status{Variant: variant}
	if w.Output != nil {
		s.Output = *w.Output
		s.HasOutput = true
	}
	return s, nil
}
