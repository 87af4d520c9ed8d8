// Package main is the entry point for the courseware CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/cmd/courseware/commands"
	"go.trai.ch/courseware/internal/adapters/config"
	"go.trai.ch/courseware/internal/adapters/logger"
	"go.trai.ch/courseware/internal/app"
	_ "go.trai.ch/courseware/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Flags that shape the component graph are read before it is built.
	ctx = withGlobalFlags(ctx, args)

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	if cleanup != nil {
		defer cleanup()
	}

	components.App.WithOutput(stdout, stderr)
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// withGlobalFlags pins --config and --json-logs for the config and logger nodes.
func withGlobalFlags(ctx context.Context, args []string) context.Context {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return ctx
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				ctx = config.ContextWithPath(ctx, args[i+1])
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			ctx = config.ContextWithPath(ctx, strings.TrimPrefix(arg, "--config="))
		case arg == "--json-logs" || arg == "--json-logs=true":
			ctx = logger.ContextWithJSON(ctx, true)
		}
	}
	return ctx
}
