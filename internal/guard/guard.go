// Package guard blocks copy-style key chords while sensitive content is
// on screen.
package guard

import "sync"

// DefaultBlockedKeys are the chords refused while the guard is active.
var DefaultBlockedKeys = []string{"ctrl+shift+c", "ctrl+insert"}

// Guard is a reference-counted content guard. It is active while at
// least one activation is outstanding, so nested sensitive views keep
// the protection up until the last one releases.
type Guard struct {
	mu      sync.Mutex
	refs    int
	blocked map[string]struct{}
}

// New creates a guard blocking the default chords plus extraKeys.
func New(extraKeys ...string) *Guard {
	blocked := make(map[string]struct{}, len(DefaultBlockedKeys)+len(extraKeys))
	for _, k := range DefaultBlockedKeys {
		blocked[k] = struct{}{}
	}
	for _, k := range extraKeys {
		if k != "" {
			blocked[k] = struct{}{}
		}
	}
	return &Guard{blocked: blocked}
}

// Activate turns the guard on and returns its release. The release is
// idempotent, so calling it again (or from a deferred recovery path)
// never drops another activation's hold.
func (g *Guard) Activate() (release func()) {
	g.mu.Lock()
	g.refs++
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			if g.refs > 0 {
				g.refs--
			}
			g.mu.Unlock()
		})
	}
}

// Active reports whether any activation is outstanding.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refs > 0
}

// Blocked reports whether a key chord must be swallowed. An inactive
// guard blocks nothing.
func (g *Guard) Blocked(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refs == 0 {
		return false
	}
	_, ok := g.blocked[key]
	return ok
}
