// Command daybook indexes scanned journal entries into a local vector
// index and answers questions from them.
package main

import (
	"github.com/quillstone-labs/daybook-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
