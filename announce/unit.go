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

// Package announce implements the Announce Unit and Announcer: the
// per-service tick loop that keeps a service registered and passing at
// the agent, and the registry that supervises one unit per announced
// service.
package announce

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/consul-announce/agent"
	"github.com/hashicorp/consul-announce/types"
)

// health is one side of a Unit's status map: whether the last attempt at
// that facet (service registration, heartbeat) succeeded, failed, or was
// never attempted.
type health int

const (
	healthAbsent health = iota
	healthOK
	healthError
)

// shutdownGrace bounds the final deregistration request issued by Stop,
// so a hung agent cannot block shutdown past this deadline.
const shutdownGrace = 5 * time.Second

// Stat is the externally observable health of a Unit, as returned by
// Stat(). Either field defaults to "error" when never attempted.
type Stat struct {
	Service   string
	Heartbeat string
}

func (h health) external() string {
	if h == healthOK {
		return "ok"
	}
	return "error"
}

// Unit is a single service's tick-loop worker: it owns the state machine
// that keeps a Service registered with the agent and its TTL check
// passing, backing off on failure and resetting on success.
//
// After NewUnit's synchronous first tick, all mutable state is confined
// to the goroutine running loop; Stat and Stop communicate with it over channels so callers never touch
// that state directly.
type Unit struct {
	service types.Service
	client   *agent.Client
	log      hclog.Logger
	baseTick int64

	statReq  chan chan Stat
	stopOnce sync.Once
	stopCh   chan chan struct{}
	doneCh   chan struct{}

	timer *time.Timer
	wait  int64

	svcHealth health
	hbHealth  health
}

// NewUnit builds a Unit for svc and runs its synchronous first tick. The
// returned Unit's goroutine is already running; callers must eventually
// call Stop to deregister and release it.
func NewUnit(svc types.Service, client *agent.Client, log hclog.Logger) (*Unit, error) {
	baseTick, err := BaseTick(svc)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	u := &Unit{
		service:  svc,
		client:   client,
		log:      log.With("service_id", svc.ID, "service_name", svc.Name),
		baseTick: baseTick,
		statReq:  make(chan chan Stat),
		stopCh:   make(chan chan struct{}),
		doneCh:   make(chan struct{}),
		wait:     baseTick,
	}

	// The first tick runs synchronously during startup: failures do not
	// prevent startup, they just leave the unit in Failing and schedule
	// a retry from within the loop.
	u.tick(context.Background())

	go u.loop()
	return u, nil
}

// Stat returns the Unit's current {service, heartbeat} health.
func (u *Unit) Stat() Stat {
	reply := make(chan Stat, 1)
	select {
	case u.statReq <- reply:
		return <-reply
	case <-u.doneCh:
		return Stat{Service: u.svcHealth.external(), Heartbeat: u.hbHealth.external()}
	}
}

// Stop cancels the pending timer, issues a final deregistration, and
// blocks until the unit's goroutine has exited. Stop is idempotent.
func (u *Unit) Stop(ctx context.Context) {
	u.stopOnce.Do(func() {
		reply := make(chan struct{})
		u.stopCh <- reply
		<-reply
	})
	<-u.doneCh
}

func (u *Unit) loop() {
	defer close(u.doneCh)

	u.timer = time.NewTimer(durationMillis(u.wait))
	defer u.timer.Stop()

	for {
		select {
		case <-u.timer.C:
			u.tick(context.Background())
			u.timer.Reset(durationMillis(u.wait))

		case reply := <-u.statReq:
			reply <- Stat{Service: u.svcHealth.external(), Heartbeat: u.hbHealth.external()}

		case reply := <-u.stopCh:
			u.timer.Stop()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			u.deregister(shutdownCtx)
			cancel()
			close(reply)
			return
		}
	}
}

// tick runs one iteration of the unit's state machine: register if
// needed, heartbeat if the service has a check, and update the
// backoff/status state accordingly.
func (u *Unit) tick(ctx context.Context) {
	if u.svcHealth != healthOK {
		if err := u.client.ServiceRegister(ctx, u.service); err != nil {
			u.fail("register", err)
			return
		}
		u.svcHealth = healthOK
	}

	if u.service.Check == nil {
		u.succeed()
		return
	}

	if err := u.client.CheckUpdate(ctx, u.service, types.Passing()); err != nil {
		u.fail("heartbeat", err)
		return
	}
	u.hbHealth = healthOK
	u.succeed()
}

func (u *Unit) fail(step string, err error) {
	u.svcHealth = healthAbsent
	u.hbHealth = healthAbsent
	u.wait = NextWait(u.wait)
	u.log.Warn("tick failed, backing off", "step", step, "error", err, "wait_ms", u.wait)
}

func (u *Unit) succeed() {
	if u.wait != u.baseTick {
		u.log.Debug("ok")
	}
	u.wait = u.baseTick
}

func (u *Unit) deregister(ctx context.Context) {
	if u.service.ID == "" {
		return
	}
	if err := u.client.ServiceDeregister(ctx, u.service.ID); err != nil {
		u.log.Warn("deregister failed during shutdown", "error", err)
	}
}

func durationMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
