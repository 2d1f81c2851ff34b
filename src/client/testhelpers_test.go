package client

import (
	"os"
	"testing"
)

// unsetEnv removes name for the duration of the test
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	os.Unsetenv(name)
}
