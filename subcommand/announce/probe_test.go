package announce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashicorp/consul-announce/agent"
	"github.com/hashicorp/consul-announce/transport"
)

type fixedStatusTransport struct {
	status int
	calls  int
}

func (f *fixedStatusTransport) Do(_ context.Context, _ transport.Method, _ string, _ []transport.Pair, _ []byte, _ transport.Options) (*transport.Response, error) {
	f.calls++
	return &transport.Response{Status: f.status}, nil
}

func TestProbeAgentSucceedsImmediately(t *testing.T) {
	ft := &fixedStatusTransport{status: 200}
	client := agent.New("http://a", "", ft)

	require.NoError(t, probeAgent(client))
	require.Equal(t, 1, ft.calls)
}

func TestProbeAgentRetriesThenFails(t *testing.T) {
	ft := &fixedStatusTransport{status: 500}
	client := agent.New("http://a", "", ft)

	err := probeAgent(client)
	require.Error(t, err)
	require.Greater(t, ft.calls, 1)
}
