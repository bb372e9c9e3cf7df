package main

import (
	"os"

	"github.com/hvbr1s/assetctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
