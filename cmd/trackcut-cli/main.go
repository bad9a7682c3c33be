// Command trackcut-cli drives the track removal pipeline from a terminal:
// inspect folders, select tracks by language, run batches, and review the
// job history without the desktop UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
