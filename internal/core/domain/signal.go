package domain

import "sync"

// Signal is an ordered list of synchronous observers. Handlers run in
// registration order; no ordering is guaranteed across unrelated signals.
type Signal[T any] struct {
	mu       sync.Mutex
	nextID   int
	handlers []signalHandler[T]
}

type signalHandler[T any] struct {
	id int
	fn func(T)
}

// Connect registers a handler and returns a function that removes it.
func (s *Signal[T]) Connect(fn func(T)) (disconnect func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit invokes every registered handler with v, in registration order.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	handlers := make([]signalHandler[T], len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, h := range handlers {
		h.fn(v)
	}
}
