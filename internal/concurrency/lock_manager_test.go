package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("user-1:guild-1")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, lm.Len(), "released keys should be dropped")
}

func TestLockManager_IndependentKeys(t *testing.T) {
	lm := NewLockManager()
	unlockA := lm.Lock("a")
	unlockB := lm.Lock("b")
	assert.Equal(t, 2, lm.Len())

	unlockA()
	unlockA()
	unlockB()
	assert.Equal(t, 0, lm.Len())
}
