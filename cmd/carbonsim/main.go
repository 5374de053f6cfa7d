package main

import (
	"fmt"
	"os"

	"github.com/rpgo/carbonsim/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(version).Execute()
}
