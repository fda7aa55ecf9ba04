package render

import "sync"

// Guard serializes preview updates per surface: only the most recent render
// request for a surface may update it. Each request takes a monotonic
// sequence number; a result whose number is no longer current when it
// resolves is discarded instead of overwriting a newer preview.
type Guard struct {
	mu      sync.Mutex
	current map[string]uint64
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{current: make(map[string]uint64)}
}

// Begin registers a new render request for the surface and returns its
// sequence number.
func (g *Guard) Begin(surface string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[surface]++
	return g.current[surface]
}

// Accept reports whether a result with the given sequence number is still
// the latest for the surface.
func (g *Guard) Accept(surface string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current[surface] == seq
}

// Forget drops the surface's tracking state, e.g. after its file is deleted.
func (g *Guard) Forget(surface string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.current, surface)
}
