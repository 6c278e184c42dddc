// Package main provides the entry point for the timesync CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentstation/timesync/cmd/timesync/cmd"
	"github.com/agentstation/timesync/pkg/logging"
)

// version is populated by the release build.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := cmd.NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}
