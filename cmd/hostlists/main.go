// Package main provides the entry point for the hostlists CLI tool.
package main

import (
	"github.com/agentstation/hostlists/cmd/hostlists/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
