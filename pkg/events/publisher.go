// Package events provides a small in-process pub/sub bus that decouples
// game sessions from the transports observing them.
package events

import "sync"

// EventType represents the type of event
type EventType string

// Define event types
const (
	EventGameCreated      EventType = "GAME_CREATED"
	EventGameStarted      EventType = "GAME_STARTED"
	EventMovePlayed       EventType = "MOVE_PLAYED"
	EventGameEnded        EventType = "GAME_ENDED"
	EventClockUpdated     EventType = "CLOCK_UPDATED"
	EventConnectionClosed EventType = "CONNECTION_CLOSED"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	GameID  string // Optional, empty for non-game events
	Payload interface{}
}

// Handler is a function that processes events
type Handler func(event Event)

// wildcard subscribers receive every event regardless of type.
const wildcard EventType = "*"

// Publisher is the central event publisher
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (p *Publisher) Subscribe(eventType EventType, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[eventType] = append(p.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for all event types
func (p *Publisher) SubscribeAll(handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[wildcard] = append(p.subscribers[wildcard], handler)
}

// Publish broadcasts an event to its subscribers and to all-event
// subscribers. Handlers run concurrently; a slow handler never blocks
// the publishing session.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	handlers := p.subscribers[event.Type]
	allHandlers := p.subscribers[wildcard]
	p.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
	for _, handler := range allHandlers {
		go handler(event)
	}
}
