package di

import (
	"sync"

	"github.com/xraph/relay/errors"
)

// locator holds the process-wide container. It exists for code that cannot
// easily receive the container via constructor; everything else should take
// a Container directly.
var (
	locatorMu       sync.RWMutex
	locatorInstance Container
)

// SetContainer installs the container behind the service locator. It is
// intended to be called exactly once during host wiring; later calls
// replace the container wholesale, which tests use to install a fresh
// container per run instead of mutating shared state.
func SetContainer(c Container) {
	locatorMu.Lock()
	defer locatorMu.Unlock()
	locatorInstance = c
}

// Locate resolves a service through the installed container.
func Locate(name string) (any, error) {
	locatorMu.RLock()
	c := locatorInstance
	locatorMu.RUnlock()

	if c == nil {
		return nil, errors.ErrLocatorNotInitialized()
	}
	return c.Get(name)
}

// Contains reports whether the installed container has a binding. It
// returns false when no container is installed.
func Contains(name string) bool {
	locatorMu.RLock()
	c := locatorInstance
	locatorMu.RUnlock()

	if c == nil {
		return false
	}
	return c.Has(name)
}

// Reset removes the installed container. Test helper.
func Reset() {
	locatorMu.Lock()
	defer locatorMu.Unlock()
	locatorInstance = nil
}
