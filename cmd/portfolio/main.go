package main

import (
	"os"

	"portfolio.dconn.dev/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
