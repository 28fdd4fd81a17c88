// ABOUTME: Entry point for gibberlink
// ABOUTME: Hands control to the cobra command tree and exits with its status
package main

import (
	"os"

	"github.com/harperreed/gibberlink-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
