package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := New(2, 8)

	var ran int64
	for i := 0; i < 5; i++ {
		ok := pool.Submit(func() { atomic.AddInt64(&ran, 1) })
		assert.True(t, ok)
	}

	pool.Close()
	assert.Equal(t, int64(5), atomic.LoadInt64(&ran))
}

func TestPool_SubmitDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	pool := New(1, 1)

	// First job occupies the single worker, second fills the queue.
	pool.Submit(func() { <-block })
	pool.Submit(func() {})

	assert.False(t, pool.Submit(func() {}))

	close(block)
	pool.Close()
}
