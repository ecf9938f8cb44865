// Package main is the entry point for the jlc build tool.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/jlc/cmd/jlc/commands"
	"go.trai.ch/jlc/internal/app"
	_ "go.trai.ch/jlc/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	defer func() {
		if err := components.Telemetry.Close(); err != nil {
			components.Logger.Warn("failed to close telemetry: " + err.Error())
		}
	}()

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
