package main

import (
	"os"

	"github.com/smartpest-dev/smartpest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
