// Command consolidator rewrites references to duplicate assets and removes
// the duplicates once nothing uses them.
package main

import (
	"os"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/cli"
)

// version is set by the linker.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
