// Package flags holds flag types and flag sets shared by the
// subcommands in this repository.
package flags

import (
	"flag"
	"time"
)

// Taken from https://github.com/hashicorp/consul/blob/b5b9c8d953cd3c79c6b795946839f4cf5012f507/command/flags/http.go
// with flags we don't use removed. This was done so we don't depend on
// internal Consul implementation.

// AgentFlags are the flags used to configure communication with the
// local agent: its endpoint and an optional ACL token.
type AgentFlags struct {
	httpAddr StringValue
	token    StringValue
	timeout  DurationValue
}

func (f *AgentFlags) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Var(&f.httpAddr, "http-addr",
		"The address and port of the agent's HTTP API. "+
			"Defaults to http://127.0.0.1:8500. No environment variable is read.")
	fs.Var(&f.token, "token",
		"ACL token to use in requests to the agent. No environment variable is read.")
	fs.Var(&f.timeout, "timeout",
		"Overall request timeout for calls to the agent. Defaults to 30s.")
	return fs
}

// Addr returns the configured agent address, or "" if it was never set.
func (f *AgentFlags) Addr() string {
	return f.httpAddr.String()
}

// Token returns the configured ACL token, or "" if it was never set.
func (f *AgentFlags) Token() string {
	return f.token.String()
}

// Timeout returns the configured request timeout, or 0 if it was never set.
func (f *AgentFlags) Timeout() time.Duration {
	return f.timeout.Duration()
}

// Merge copies every flag defined in src onto dst, so a command can
// compose its own flag set with a shared set like AgentFlags.Flags().
func Merge(dst, src *flag.FlagSet) {
	if dst == nil {
		panic("dst cannot be nil")
	}
	if src == nil {
		return
	}
	src.VisitAll(func(f *flag.Flag) {
		dst.Var(f.Value, f.Name, f.Usage)
	})
}

// StringValue provides a flag value that's aware if it has been set.
type StringValue struct {
	v *string
}

// Set implements the flag.Value interface.
func (s *StringValue) Set(v string) error {
	if s.v == nil {
		s.v = new(string)
	}
	*(s.v) = v
	return nil
}

// String implements the flag.Value interface.
func (s *StringValue) String() string {
	var current string
	if s.v != nil {
		current = *(s.v)
	}
	return current
}

// DurationValue provides a flag value that's aware if it has been set.
type DurationValue struct {
	v *time.Duration
}

// Set implements the flag.Value interface.
func (d *DurationValue) Set(v string) error {
	if d.v == nil {
		d.v = new(time.Duration)
	}
	var err error
	*(d.v), err = time.ParseDuration(v)
	return err
}

// String implements the flag.Value interface.
func (d *DurationValue) String() string {
	return d.Duration().String()
}

// Duration returns the parsed duration, or 0 if it was never set.
func (d *DurationValue) Duration() time.Duration {
	var current time.Duration
	if d.v != nil {
		current = *(d.v)
	}
	return current
}
