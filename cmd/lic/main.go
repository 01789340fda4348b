// Command lic writes a LICENSE file for the current project.
package main

import (
	"fmt"
	"os"

	"github.com/opencode-ai/lic/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
