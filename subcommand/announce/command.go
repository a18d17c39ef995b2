// Package announce implements the "announce" subcommand: a standalone
// process that registers a configured set of services with a local
// agent and keeps them passing until it is told to stop.
package announce

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"

	"github.com/hashicorp/consul-announce/agent"
	announcelib "github.com/hashicorp/consul-announce/announce"
	"github.com/hashicorp/consul-announce/subcommand/common"
	"github.com/hashicorp/consul-announce/subcommand/flags"
	"github.com/hashicorp/consul-announce/transport"
)

// Command implements the "announce" subcommand.
type Command struct {
	UI cli.Ui

	agentFlags         *flags.AgentFlags
	flagServicesConfig string
	flagLogLevel       string
	flagSet            *flag.FlagSet

	once  sync.Once
	help  string
	sigCh chan os.Signal
}

func (c *Command) init() {
	c.flagSet = flag.NewFlagSet("", flag.ContinueOnError)
	c.flagSet.StringVar(&c.flagServicesConfig, "services-config", "", "Path to a YAML file listing the services to announce")
	c.flagSet.StringVar(&c.flagLogLevel, "log-level", "info",
		"Log verbosity level. Supported values (in order of detail) are \"trace\", "+
			"\"debug\", \"info\", \"warn\", and \"error\". Defaults to info.")

	c.agentFlags = &flags.AgentFlags{}
	flags.Merge(c.flagSet, c.agentFlags.Flags())
	c.help = flags.Usage(help, c.flagSet)

	if c.sigCh == nil {
		c.sigCh = make(chan os.Signal, 1)
		signal.Notify(c.sigCh, syscall.SIGINT, syscall.SIGTERM)
	}
}

// Run parses flags, registers every configured service, and blocks until
// a termination signal is received, at which point it deregisters
// everything and exits.
func (c *Command) Run(args []string) int {
	c.once.Do(c.init)
	if err := c.flagSet.Parse(args); err != nil {
		return 1
	}

	if err := c.validateFlags(); err != nil {
		c.UI.Error("Error: " + err.Error())
		return 1
	}

	logger, err := common.Logger(c.flagLogLevel)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	services, err := loadServicesConfig(c.flagServicesConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error reading -services-config: %s", err))
		return 1
	}

	endpoint := c.agentFlags.Addr()
	if endpoint == "" {
		endpoint = "http://127.0.0.1:8500"
	}
	timeout := c.agentFlags.Timeout()
	if timeout == 0 {
		timeout = transport.DefaultOverallTimeout
	}

	t := transport.New(transport.Config{OverallTimeout: timeout})
	client := agent.New(endpoint, c.agentFlags.Token(), t)

	if err := probeAgent(client); err != nil {
		c.UI.Error(fmt.Sprintf("agent unreachable at %s: %s", endpoint, err))
		return 1
	}

	announcer := announcelib.NewAnnouncer(client, logger)

	logger.Info("announcing services", "endpoint", endpoint, "count", len(services))

	var result *multierror.Error
	for _, svc := range services {
		if err := announcer.Register(svc); err != nil {
			result = multierror.Append(result, fmt.Errorf("registering %s/%s: %w", svc.ID, svc.Name, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		c.UI.Error(err.Error())
		announcer.Shutdown()
		return 1
	}

	sig := <-c.sigCh
	logger.Info(fmt.Sprintf("%s received, shutting down", sig))
	announcer.Shutdown()
	return 0
}

func (c *Command) validateFlags() error {
	if c.flagServicesConfig == "" {
		return errors.New("-services-config must be set")
	}
	if _, err := os.Stat(c.flagServicesConfig); os.IsNotExist(err) {
		return fmt.Errorf("-services-config file %q not found", c.flagServicesConfig)
	}
	return nil
}

// interrupt sends os.Interrupt to the command so it can exit gracefully.
// It exists for tests.
func (c *Command) interrupt() {
	c.sendSignal(syscall.SIGINT)
}

func (c *Command) sendSignal(sig os.Signal) {
	c.sigCh <- sig
}

func (c *Command) Synopsis() string { return synopsis }
func (c *Command) Help() string {
	c.once.Do(c.init)
	return c.help
}

const synopsis = "Announce services to a local agent."
const help = `
Usage: consul-announce announce [options]

  Registers the services listed in -services-config with the local
  agent and keeps their TTL checks passing until this process receives
  SIGINT or SIGTERM, at which point it deregisters them and exits.

`
