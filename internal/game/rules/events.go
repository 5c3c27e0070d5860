package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Dice events
	EventDiceThrown  EventType = "DICE_THROWN"
	EventDieHeld     EventType = "DIE_HELD"
	EventDieReleased EventType = "DIE_RELEASED"

	// Category events
	EventCategorySelected   EventType = "CATEGORY_SELECTED"
	EventCategoryDeselected EventType = "CATEGORY_DESELECTED"
	EventBonusAchieved      EventType = "BONUS_ACHIEVED"

	// Round/game events
	EventRoundStarted EventType = "ROUND_STARTED"
	EventGameOver     EventType = "GAME_OVER"
	EventGameReset    EventType = "GAME_RESET"

	// EventIntentRejected is published when an intent fails its precondition.
	EventIntentRejected EventType = "INTENT_REJECTED"
)

// Event describes something that happened to a game.
type Event struct {
	Type        EventType
	ID          string    // Unique event ID
	GameID      string    // Game the event belongs to
	Round       int       // Round number when the event occurred
	Index       int       // Die or category index (-1 when unused)
	Amount      int       // Points, throws left, etc.
	Faces       []int     // Dice faces after the event, when relevant
	Timestamp   time.Time // When the event occurred
	Description string    // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener              // All listeners
	typedListeners map[EventType][]TypedListener // Listeners filtered by event type
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not subscribe or unsubscribe from within the callback.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}

	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, gameID string, round int) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		GameID:    gameID,
		Round:     round,
		Index:     -1,
		Timestamp: time.Now(),
	}
}

// NewIndexedEvent creates an event about a specific die or category.
func NewIndexedEvent(eventType EventType, gameID string, round, index, amount int) Event {
	evt := NewEvent(eventType, gameID, round)
	evt.Index = index
	evt.Amount = amount
	return evt
}
