package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Napageneral/chat/internal/cli"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(cli.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    buildDate,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
