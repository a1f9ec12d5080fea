package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"usecase-assistant/internal/cli"
	"usecase-assistant/internal/platform/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(4)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewRootCommand(cfg), os.Stderr)
	stop()
	os.Exit(code)
}
