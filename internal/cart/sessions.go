package cart

import "sync"

// Sessions maps users to their carts. Carts are created lazily on first
// access and live until DropFor is called, normally after a successful
// checkout keeps the cart but empties it instead.
type Sessions struct {
	mu    sync.Mutex
	carts map[int64]*Cart
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[int64]*Cart)}
}

// For returns the user's cart, creating an empty one if none exists.
func (s *Sessions) For(userID int64) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[userID]; ok {
		return c
	}
	c := New()
	s.carts[userID] = c
	return c
}

// DropFor discards the user's cart entirely.
func (s *Sessions) DropFor(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Count returns the number of live carts.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
