package pipeline

import (
	"os"
	"testing"

	"clarifycoder/internal/critic"
)

// End-to-end tests run the real sandbox, which re-executes the current
// binary as its oracle runner.
func TestMain(m *testing.M) {
	if critic.RunnerInvoked() {
		os.Exit(critic.RunnerMain(os.Stdin, os.Stdout))
	}
	os.Exit(m.Run())
}
