package main

import (
	"os"

	"github.com/kurobon/gitsim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
