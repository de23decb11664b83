package lazy_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no goroutine leaks out of the package tests, including
// the concurrent-forcing ones.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
