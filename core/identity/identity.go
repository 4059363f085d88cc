// Package identity provides injectable ID and time sources.
// Invoice IDs never come from wall-clock reads inside the core, so
// extraction output is reproducible and tests are deterministic.
package identity

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces invoice identifiers
type Generator interface {
	// NextID returns the next identifier
	NextID() string
}

// Sequence is a deterministic, monotonic generator
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      uint64
}

// NewSequence creates a sequence generator with the given ID prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NextID returns the next ID in the sequence
func (s *Sequence) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%06d", s.prefix, s.n)
}

// UUID generates random UUIDv4 identifiers
type UUID struct{}

// NextID returns a new UUID string
func (UUID) NextID() string {
	return uuid.NewString()
}

// Clock supplies timestamps
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current time in UTC
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.T
}
