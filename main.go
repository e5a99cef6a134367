package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AnyUserName/invascii-cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invascii: %v\n", err)
		os.Exit(1)
	}
}
