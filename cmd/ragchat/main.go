// Command ragchat is a terminal client for a local RAG server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
