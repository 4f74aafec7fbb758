package orchestrator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstSubmitConsumedOnce(t *testing.T) {
	s := NewProcessState()

	assert.True(t, s.ConsumeFirstSubmit())
	assert.False(t, s.ConsumeFirstSubmit())
	assert.False(t, s.ConsumeFirstSubmit())
}

func TestRearmRestoresFirstSubmit(t *testing.T) {
	s := NewProcessState()

	s.ConsumeFirstSubmit()
	s.Rearm()
	assert.True(t, s.ConsumeFirstSubmit())
	assert.False(t, s.ConsumeFirstSubmit())
}

func TestReplyToggle(t *testing.T) {
	s := NewProcessState()

	assert.False(t, s.ReplyToAll())
	s.SetReplyToAll(true)
	assert.True(t, s.ReplyToAll())
	s.SetReplyToAll(false)
	assert.False(t, s.ReplyToAll())
}

func TestFirstSubmitRaceYieldsSingleWinner(t *testing.T) {
	s := NewProcessState()

	const goroutines = 32
	var wg sync.WaitGroup
	results := make(chan bool, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.ConsumeFirstSubmit()
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for won := range results {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one submission may claim the first slot")
}
