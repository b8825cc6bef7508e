package glcmd

import (
	"fmt"
	"sort"
	"sync"
)

// ExecutorFactory is a function that creates a new executor instance.
// Factories are registered via RegisterExecutor() and called by
// NewExecutor().
type ExecutorFactory func() Executor

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	executors  = make(map[string]ExecutorFactory)
)

// RegisterExecutor registers an executor factory with the given name.
// This function is typically called from init() in executor packages,
// following the database/sql driver pattern:
//
//	func init() {
//	    glcmd.RegisterExecutor("trace", func() glcmd.Executor {
//	        return New(os.Stdout)
//	    })
//	}
//
// RegisterExecutor panics if factory is nil or if an executor with the
// same name is already registered.
func RegisterExecutor(name string, factory ExecutorFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("glcmd: RegisterExecutor factory is nil")
	}
	if _, dup := executors[name]; dup {
		panic("glcmd: RegisterExecutor called twice for " + name)
	}
	executors[name] = factory
}

// UnregisterExecutor removes an executor from the registry.
// This is primarily useful for testing to clean up between tests.
// If the executor is not registered, this is a no-op.
func UnregisterExecutor(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(executors, name)
}

// NewExecutor creates a new executor instance by name.
// The name must match a previously registered executor.
//
// Example:
//
//	import _ "github.com/gogpu/glcmd/executors/trace" // Register trace executor
//
//	exec, err := glcmd.NewExecutor("trace")
func NewExecutor(name string) (Executor, error) {
	registryMu.RLock()
	factory, ok := executors[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("glcmd: unknown executor %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustExecutor creates a new executor instance by name, panicking on error.
func MustExecutor(name string) Executor {
	e, err := NewExecutor(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Executors returns a sorted list of registered executor names.
func Executors() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(executors))
	for name := range executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an executor with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := executors[name]
	return ok
}
