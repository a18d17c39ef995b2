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
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/consul-announce/agent"
	"github.com/hashicorp/consul-announce/types"
)

// ErrNotFound is returned by Unregister when no unit is registered under
// the given announce key.
var ErrNotFound = errors.New("announce: not found")

// Announcer is the registry/supervisor of Announce Units, keyed by
// announce key. Every operation is serialized by a single mutex: the
// registry itself is small and short-held, so a mutex is simpler and
// just as correct as routing requests through a dedicated goroutine, and
// it's the pattern the source's own reconciler uses for its namespace
// map.
type Announcer struct {
	client *agent.Client
	log    hclog.Logger

	mu    sync.Mutex
	units map[types.AnnounceKey]*Unit
}

// NewAnnouncer builds an Announcer that drives every Unit through client.
func NewAnnouncer(client *agent.Client, log hclog.Logger) *Announcer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Announcer{
		client: client,
		log:    log,
		units:  make(map[types.AnnounceKey]*Unit),
	}
}

// Register creates and starts a Unit for svc if one doesn't already
// exist under svc's announce key. Register is idempotent: registering
// the same key twice is a no-op the second time, even if the Service
// value differs (e.g. only in Tags).
func (a *Announcer) Register(svc types.Service) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := svc.Key()
	if _, exists := a.units[key]; exists {
		return nil
	}

	unit, err := NewUnit(svc, a.client, a.log)
	if err != nil {
		return err
	}
	a.units[key] = unit
	return nil
}

// Unregister terminates and removes the unit registered under svc's
// announce key, triggering its final deregistration. It returns
// ErrNotFound if no such unit exists.
func (a *Announcer) Unregister(svc types.Service) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := svc.Key()
	unit, exists := a.units[key]
	if !exists {
		return ErrNotFound
	}
	delete(a.units, key)

	unit.Stop(context.Background())
	return nil
}

// Whereis returns the live Unit for svc's announce key, or false if none
// exists.
func (a *Announcer) Whereis(svc types.Service) (*Unit, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	unit, exists := a.units[svc.Key()]
	return unit, exists
}

// Killall terminates every registered unit and clears the registry. It
// is intended for test teardown; Shutdown is the production path and
// additionally logs. Units are stopped concurrently since each one's
// deregister call is an independent round trip.
func (a *Announcer) Killall() {
	a.mu.Lock()
	units := a.units
	a.units = make(map[types.AnnounceKey]*Unit)
	a.mu.Unlock()

	var wg sync.WaitGroup
	for _, unit := range units {
		wg.Add(1)
		go func(u *Unit) {
			defer wg.Done()
			u.Stop(context.Background())
		}(unit)
	}
	wg.Wait()
}

// Shutdown cascades termination to every unit. It is the counterpart to
// Killall used on process shutdown.
func (a *Announcer) Shutdown() {
	a.log.Info("shutting down announcer, deregistering all services")
	a.Killall()
}
