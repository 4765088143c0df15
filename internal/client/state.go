package client

import "sync"

// State - наблюдаемое значение: подписчики получают текущее значение сразу
// при подписке и каждое новое значение после Set
type State[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewState создаёт State с начальным значением
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[int]func(T))}
}

// Get возвращает текущее значение
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set заменяет значение и уведомляет подписчиков
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update применяет fn к текущему значению и сохраняет результат
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.mu.Unlock()
	s.Set(v)
}

// Subscribe регистрирует подписчика и возвращает функцию отписки
func (s *State[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	v := s.value
	s.mu.Unlock()

	fn(v)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
