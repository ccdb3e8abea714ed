package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment ensures that tests are running in the testing
// profile. This prevents accidental execution against the development
// database file.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "testing" && env != "test" {
		t.Fatalf("Tests must run with GO_ENV=testing to protect development data. Current GO_ENV=%q.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to the testing profile and fails if it
// cannot be set. Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "testing"); err != nil {
		t.Fatalf("Failed to set GO_ENV=testing: %v", err)
	}
}
