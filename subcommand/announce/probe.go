package announce

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/hashicorp/consul-announce/agent"
)

// probeStartupRetries bounds how many times probeAgent retries before
// giving up. Registration requires the agent be reachable; the agent may
// simply not have finished starting yet, so a short bounded retry is
// worth it before treating that as fatal.
const probeStartupRetries = 5
const probeStartupInterval = 200 * time.Millisecond

// probeAgent confirms the agent is reachable before any service is
// registered, retrying with backoff since the agent may still be
// starting up alongside this process.
func probeAgent(client *agent.Client) error {
	return backoff.Retry(func() error {
		return client.Ping(context.Background())
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(probeStartupInterval), probeStartupRetries))
}
