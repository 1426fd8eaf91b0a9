package vaulttest

import (
	"testing"

	"github.com/iov-one/delayvault/errors"
)

// IsErr fails the test if given error is not of the wanted kind. Use a nil
// kind to ensure that no error was returned.
func IsErr(t testing.TB, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		// %+v prints the stack trace of the wrapped error.
		t.Fatalf("want %v error, got %+v", want, got)
	}
}
