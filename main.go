package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sheetview/cmd"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	if err := cmd.Execute(ctx, version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
