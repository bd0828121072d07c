// Package test contains helpers shared by the tests of the command and its
// packages.
package test

import (
	"sync"
	"testing"
)

var (
	locksMu sync.Mutex
	locks   = map[any]*sync.Mutex{}
)

func lockFor(ptr any) *sync.Mutex {
	locksMu.Lock()
	defer locksMu.Unlock()

	mu, ok := locks[ptr]
	if !ok {
		mu = &sync.Mutex{}
		locks[ptr] = mu
	}
	return mu
}

// MockGlobal sets *target to mock until the end of the test. Tests that
// mock the same global are serialized, so mocking the same global twice
// from one test deadlocks.
func MockGlobal[T any](t *testing.T, target *T, mock T) {
	t.Helper()

	mu := lockFor(target)
	mu.Lock()

	orig := *target
	*target = mock

	t.Cleanup(func() {
		*target = orig
		mu.Unlock()
	})
}
