package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// WriteTempFile writes data to a new file named name in a per-test temporary directory and returns its path.
func WriteTempFile(tb testing.TB, name, data string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	test.That(tb, os.WriteFile(path, []byte(data), 0o600), test.ShouldBeNil)
	return path
}
