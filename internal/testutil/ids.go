package testutil

import (
	"fmt"
	"sync"
)

// DefaultSessionPrefix is used when SequentialIDs is given an empty prefix.
const DefaultSessionPrefix = "test-session"

// SequentialIDs generates "<prefix>-0001", "<prefix>-0002", ... and
// satisfies session.IDGenerator.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix means
// DefaultSessionPrefix.
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
