package usecase

import "sync"

// Envelope is the tri-state result handed to the presentation layer.
type Envelope[T any] struct {
	Data    T       `json:"data"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

// ViewState holds a page's envelope and discards results from fetch cycles
// that are no longer current. Each Begin issues a new generation; Resolve only
// writes when its generation is still the latest and the view is active.
type ViewState[T any] struct {
	mu     sync.Mutex
	gen    uint64
	active bool
	env    Envelope[T]
}

// NewViewState creates an active, idle view.
func NewViewState[T any]() *ViewState[T] {
	return &ViewState[T]{active: true}
}

// Begin starts a fetch cycle and returns its generation.
func (s *ViewState[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.env.Loading = true
	s.env.Error = nil
	return s.gen
}

// Resolve records the outcome of cycle gen. It returns false when the result
// was discarded. On error the data is reset to its zero value.
func (s *ViewState[T]) Resolve(gen uint64, data T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || gen != s.gen {
		return false
	}
	s.env.Loading = false
	if err != nil {
		var zero T
		msg := err.Error()
		s.env.Data = zero
		s.env.Error = &msg
		return true
	}
	s.env.Data = data
	s.env.Error = nil
	return true
}

// Deactivate abandons every in-flight cycle. Their results will be dropped.
func (s *ViewState[T]) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.gen++
}

// Activate re-arms a deactivated view. The previous envelope is cleared.
func (s *ViewState[T]) Activate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.env = Envelope[T]{}
}

// Active reports whether results are still accepted.
func (s *ViewState[T]) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Snapshot returns a copy of the current envelope.
func (s *ViewState[T]) Snapshot() Envelope[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}
