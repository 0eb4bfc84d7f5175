package actions

import (
	"sort"
	"sync"
)

// Store maps normalized action names to registered actions.
type Store struct {
	mutex   sync.RWMutex
	actions map[string]Action
}

// NewStore constructs an empty action store.
func NewStore() *Store {
	return &Store{actions: make(map[string]Action)}
}

// Resolve returns the action registered under the case-insensitive name.
func (store *Store) Resolve(name string) (Action, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	action, exists := store.actions[NormalizeName(name)]
	return action, exists
}

// Names returns the normalized names of every stored action in sorted order.
func (store *Store) Names() []string {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	names := make([]string, 0, len(store.actions))
	for name := range store.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored actions.
func (store *Store) Len() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return len(store.actions)
}

// swap stores the action under its normalized name and reports whether one was replaced.
func (store *Store) swap(action Action) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	_, existed := store.actions[action.Name]
	store.actions[action.Name] = action
	return existed
}
