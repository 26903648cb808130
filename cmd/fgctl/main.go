package main

import (
	"os"

	"github.com/orbitlabs/formgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
