// Command pokesync populates the catalog offline: it runs the same
// fetch-and-persist pipeline as the API for a list of names, and can apply
// database migrations.
//
// Usage:
//
//	pokesync sync pikachu charizard
//	pokesync sync --file names.txt
//	pokesync migrate
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
