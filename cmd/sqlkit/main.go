// Command sqlkit is the CLI for the Rabbitai SQL engine toolkit.
package main

import (
	"os"

	"github.com/rabbitai/sqlkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
