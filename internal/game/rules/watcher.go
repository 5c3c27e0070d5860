package rules

import (
	"sync"
)

// Watcher is an interface for objects that observe game events and track a condition.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)

	// Reset clears the watcher's condition and state.
	Reset()

	// ConditionMet returns true if the condition this watcher tracks has been met.
	ConditionMet() bool

	// GetKey returns a unique key for this watcher instance.
	GetKey() string
}

// BaseWatcher provides a base implementation for watchers.
type BaseWatcher struct {
	condition bool
	key       string
}

// NewBaseWatcher creates a new base watcher with the given key.
func NewBaseWatcher(key string) *BaseWatcher {
	return &BaseWatcher{key: key}
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// WatcherRegistry routes events from a bus to the registered watchers.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	order    []string
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher to the registry, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.GetKey()
	if _, exists := wr.watchers[key]; !exists {
		wr.order = append(wr.order, key)
	}
	wr.watchers[key] = watcher
}

// GetWatcher returns the watcher registered under key.
func (wr *WatcherRegistry) GetWatcher(key string) (Watcher, bool) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	w, ok := wr.watchers[key]
	return w, ok
}

// Watch forwards the event to every watcher in registration order.
func (wr *WatcherRegistry) Watch(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.order {
		wr.watchers[key].Watch(event)
	}
}

// ResetAll resets every registered watcher.
func (wr *WatcherRegistry) ResetAll() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.order {
		wr.watchers[key].Reset()
	}
}

// Attach subscribes the registry to bus and returns the subscription handle.
func (wr *WatcherRegistry) Attach(bus *EventBus) int {
	return bus.Subscribe(wr.Watch)
}
