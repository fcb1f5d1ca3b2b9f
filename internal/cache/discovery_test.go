package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoveryGateSingleWriter(t *testing.T) {
	defer FinishDiscovery()
	assert.True(t, TryStartDiscovery())
	assert.False(t, TryStartDiscovery(), "a second concurrent discovery must be rejected")
	assert.True(t, DiscoveryBusy())

	FinishDiscovery()
	assert.False(t, DiscoveryBusy())
	assert.True(t, TryStartDiscovery(), "gate must be reusable once released")
	FinishDiscovery()
}

func TestDiscoveryGateConcurrentOnlyOneWinner(t *testing.T) {
	defer FinishDiscovery()
	FinishDiscovery()

	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if TryStartDiscovery() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
