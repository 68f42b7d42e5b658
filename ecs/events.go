package ecs

import (
	"iter"
	"reflect"
)

// eventQueue is the type-erased view of an event buffer held by the storage.
type eventQueue interface {
	clear()
	size() int
}

type eventBuffer[T any] struct {
	items []T
}

func (b *eventBuffer[T]) clear() {
	clear(b.items)
	b.items = b.items[:0]
}

func (b *eventBuffer[T]) size() int {
	return len(b.items)
}

// Events is a mailbox for events of type T that lives for a single frame.
// Systems earlier in the frame Send, later systems Read or Drain, and the
// Scheduler clears every queue once the frame's systems have run, so nothing
// carries over to the next frame.
type Events[T any] struct {
	buffer *eventBuffer[T]
}

// NewEvents returns an accessor for the event queue of type T, creating the
// queue in storage if needed.
func NewEvents[T any](storage *Storage) *Events[T] {
	e := &Events[T]{}
	e.Init(storage)
	return e
}

// Init binds the accessor to storage. The Scheduler calls it for Events
// fields of registered systems.
func (e *Events[T]) Init(storage *Storage) {
	typ := reflect.TypeFor[T]()
	queue, ok := storage.events[typ]
	if !ok {
		queue = &eventBuffer[T]{}
		storage.events[typ] = queue
	}
	e.buffer = queue.(*eventBuffer[T])
}

// Send appends an event to the queue.
func (e *Events[T]) Send(event T) {
	e.buffer.items = append(e.buffer.items, event)
}

// Len returns the number of queued events.
func (e *Events[T]) Len() int {
	return len(e.buffer.items)
}

// Read yields the queued events in send order without consuming them.
func (e *Events[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, event := range e.buffer.items {
			if !yield(event) {
				return
			}
		}
	}
}

// Drain empties the queue and returns how many events it held.
func (e *Events[T]) Drain() int {
	n := len(e.buffer.items)
	e.buffer.clear()
	return n
}

// ClearEvents empties every event queue. The Scheduler calls it at the end of each frame.
func (s *Storage) ClearEvents() {
	for _, queue := range s.events {
		queue.clear()
	}
}

// PendingEvents returns the total number of queued events across all types.
func (s *Storage) PendingEvents() int {
	total := 0
	for _, queue := range s.events {
		total += queue.size()
	}
	return total
}
