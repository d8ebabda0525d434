// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Events published by the collision engine
const (
	BodyCollision Type = "body_collision"
	SweepImpact   Type = "sweep_impact"
	OctreeRebuilt Type = "octree_rebuilt"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed
type Subscription struct {
	id        uint64
	eventType Type
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, inside the tick.
type Bus struct {
	handlers map[Type]map[uint64]Handler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[uint64]Handler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns a
// subscription handle for later removal
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[uint64]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return &Subscription{id: id, eventType: eventType}
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers[sub.eventType], sub.id)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.GetType()]))
	for _, h := range b.handlers[event.GetType()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// CollisionEvent is published for every pair the narrow phase reports
type CollisionEvent struct {
	BaseEvent
	BodyA        string
	BodyB        string
	Penetration  float64
	ImpactEnergy float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, bodyA, bodyB string, penetration, impactEnergy float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BodyCollision,
			Source:    source,
		},
		BodyA:        bodyA,
		BodyB:        bodyB,
		Penetration:  penetration,
		ImpactEnergy: impactEnergy,
	}
}

// SweepEvent is published when a continuous collision check reports a
// hit along a body's motion path
type SweepEvent struct {
	BaseEvent
	BodyID       string
	TargetID     string
	TimeOfImpact float64
}

// NewSweepEvent creates a new sweep impact event
func NewSweepEvent(source interface{}, bodyID, targetID string, timeOfImpact float64) *SweepEvent {
	return &SweepEvent{
		BaseEvent: BaseEvent{
			EventType: SweepImpact,
			Source:    source,
		},
		BodyID:       bodyID,
		TargetID:     targetID,
		TimeOfImpact: timeOfImpact,
	}
}

// RebuildEvent is published after each spatial index rebuild
type RebuildEvent struct {
	BaseEvent
	BodyCount int
}

// NewRebuildEvent creates a new rebuild event
func NewRebuildEvent(source interface{}, bodyCount int) *RebuildEvent {
	return &RebuildEvent{
		BaseEvent: BaseEvent{
			EventType: OctreeRebuilt,
			Source:    source,
		},
		BodyCount: bodyCount,
	}
}
