package testutil

import (
	"testing"

	"github.com/leengari/airquery/internal/domain/errors"
)

// AssertKeyNotFound checks that err reports a missing lookup key
func AssertKeyNotFound(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected a key-not-found error, got nil", context)
		return
	}
	if !errors.IsKeyNotFound(err) {
		t.Errorf("%s: expected a key-not-found error, got: %v", context, err)
	}
}

