package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ved/cli"
)

var version = "dev"

func main() {
	// Cancel running ffmpeg processes on Ctrl+C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(cli.WithVersion(version))
	err := app.Execute(ctx, os.Args[1:])

	code := cli.ExitCode(err)
	if ctx.Err() != nil && code != cli.ExitOK {
		fmt.Fprintln(os.Stderr, "Interrupted")
		code = cli.ExitInterrupted
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == cli.ExitUsage {
			fmt.Fprintln(os.Stderr, "Run 'ved --help' for usage.")
		}
	}

	stop()
	os.Exit(code)
}
