package main

import (
	"errors"
	"fmt"
	"os"

	"palette/internal/cli"
)

// set by -ldflags at release time
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		if !errors.Is(err, cli.ErrNothingPicked) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
