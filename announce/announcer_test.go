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

	"github.com/hashicorp/consul-announce/agent"
	"github.com/hashicorp/consul-announce/types"
)

func TestAnnouncerRegisterUnregisterLifecycle(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	c := agent.New("http://a", "", ft)
	a := NewAnnouncer(c, nil)
	defer a.Shutdown()

	svc := types.Service{ID: "foo", Name: "bar"}

	require.NoError(t, a.Register(svc))
	require.NoError(t, a.Register(svc)) // idempotent

	_, ok := a.Whereis(svc)
	require.True(t, ok)

	require.NoError(t, a.Unregister(svc))
	require.ErrorIs(t, a.Unregister(svc), ErrNotFound)

	_, ok = a.Whereis(svc)
	require.False(t, ok)
}

func TestAnnouncerRegisterGrowsByAtMostOne(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	c := agent.New("http://a", "", ft)
	a := NewAnnouncer(c, nil)
	defer a.Shutdown()

	svc := types.Service{ID: "foo", Name: "bar"}
	require.NoError(t, a.Register(svc))
	require.NoError(t, a.Register(svc))
	require.NoError(t, a.Register(svc))

	require.Len(t, a.units, 1)
}

func TestAnnouncerTagsOnlyDifferenceCollides(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	c := agent.New("http://a", "", ft)
	a := NewAnnouncer(c, nil)
	defer a.Shutdown()

	svcA := types.Service{ID: "foo", Name: "bar", Tags: []string{"v1"}}
	svcB := types.Service{ID: "foo", Name: "bar", Tags: []string{"v2"}}

	require.NoError(t, a.Register(svcA))
	require.NoError(t, a.Register(svcB))
	require.Len(t, a.units, 1)
}

func TestAnnouncerKillallClearsRegistry(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	c := agent.New("http://a", "", ft)
	a := NewAnnouncer(c, nil)

	require.NoError(t, a.Register(types.Service{ID: "one", Name: "one"}))
	require.NoError(t, a.Register(types.Service{ID: "two", Name: "two"}))

	a.Killall()
	require.Empty(t, a.units)
}

func TestAnnouncerUnregisterUnknownService(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	c := agent.New("http://a", "", ft)
	a := NewAnnouncer(c, nil)
	defer a.Shutdown()

	err := a.Unregister(types.Service{ID: "ghost", Name: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAnnouncerShutdownIsSafeOnEmptyRegistry(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	c := agent.New("http://a", "", ft)
	a := NewAnnouncer(c, nil)
	a.Shutdown()
}
