package main

import (
	"fmt"
	"os"

	"github.com/optrack/optrack/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "optrack: %v\n", err)
		os.Exit(1)
	}
}
