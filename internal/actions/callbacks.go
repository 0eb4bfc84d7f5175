package actions

import "sync"

// Callback observes a severity firing with the action name and its results.
// For UNDEFINED the name is the invocation name as given; a non-string name
// arrives rendered with fmt's %v verb.
type Callback func(actionName string, results ...any)

// CallbackRegistry holds at most one callback per severity.
type CallbackRegistry struct {
	mutex     sync.RWMutex
	callbacks map[Severity]Callback
}

// NewCallbackRegistry constructs an empty callback registry.
func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{callbacks: make(map[Severity]Callback)}
}

// Register installs or replaces the callback for the severity; a nil callback removes it.
func (registry *CallbackRegistry) Register(severity Severity, callback Callback) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if callback == nil {
		delete(registry.callbacks, severity)
		return
	}
	registry.callbacks[severity] = callback
}

// Lookup returns the callback registered for the severity.
func (registry *CallbackRegistry) Lookup(severity Severity) (Callback, bool) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	callback, exists := registry.callbacks[severity]
	return callback, exists
}
