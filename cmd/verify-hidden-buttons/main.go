// Command verify-hidden-buttons runs the hidden-buttons browser verification and writes
// verification.png, or error.png when the check fails.
package main

import (
	"os"

	"github.com/entrhq/uiverify/pkg/harness"
	"github.com/entrhq/uiverify/pkg/scenario"
)

func main() {
	os.Exit(harness.RunStandalone(scenario.HiddenButtons))
}
