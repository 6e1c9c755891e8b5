package sampling

import (
	"fmt"
	"sync"
)

// Sampler decides which exchanges are recorded.
type Sampler interface {
	Sample() bool
}

// bucket spreads weight positive decisions evenly over every 100 calls.
type bucket struct {
	mu     sync.Mutex
	weight uint64
	credit uint64
}

// NewBucket is a factory method for a percentage Sampler. weight must be between 0 and 100.
func NewBucket(weight uint64) (Sampler, error) {
	if weight > 100 {
		return nil, fmt.Errorf("weight must be between 0 and 100, got %d", weight)
	}

	return &bucket{weight: weight}, nil
}

// Sample returns true once the accumulated weight reaches a full 100.
func (b *bucket) Sample() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.credit += b.weight
	if b.credit < 100 {
		return false
	}

	b.credit -= 100
	return true
}
