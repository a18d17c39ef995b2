package main

import (
	"os"

	"github.com/mitchellh/cli"

	cmdAnnounce "github.com/hashicorp/consul-announce/subcommand/announce"
)

// Commands is the mapping of all available consul-announce commands.
var Commands map[string]cli.CommandFactory

func init() {
	ui := &cli.BasicUi{Writer: os.Stdout, ErrorWriter: os.Stderr}

	Commands = map[string]cli.CommandFactory{
		"announce": func() (cli.Command, error) {
			return &cmdAnnounce.Command{UI: ui}, nil
		},
	}
}
