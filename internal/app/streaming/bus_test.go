package streaming

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_FanOut(t *testing.T) {
	bus := NewBus[string](4)
	a := bus.Subscribe()
	b := bus.Subscribe()
	require.Equal(t, 2, bus.Len())

	assert.Equal(t, 2, bus.Publish("laiya"))
	assert.Equal(t, "laiya", <-a.C)
	assert.Equal(t, "laiya", <-b.C)
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := NewBus[int](1)
	slow := bus.Subscribe()

	assert.Equal(t, 1, bus.Publish(1))
	assert.Equal(t, 0, bus.Publish(2))
	assert.Equal(t, int64(1), slow.Dropped())
	assert.Equal(t, 1, <-slow.C)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus[int](1)
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)

	_, open := <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, bus.Publish(1))
}

func TestBus_Close(t *testing.T) {
	bus := NewBus[int](0)
	sub := bus.Subscribe()
	bus.Close()
	bus.Close()

	_, open := <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, bus.Publish(1))

	late := bus.Subscribe()
	_, open = <-late.C
	assert.False(t, open)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus[int](1000)
	sub := bus.Subscribe()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				bus.Publish(j)
			}
		}()
	}
	wg.Wait()
	bus.Close()

	n := 0
	for range sub.C {
		n++
	}
	assert.Equal(t, 500, n)
}

func TestBus_DroppedWhilePublishing(t *testing.T) {
	bus := NewBus[int](1)
	sub := bus.Subscribe()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			bus.Publish(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = sub.Dropped()
		}
	}()
	wg.Wait()

	assert.Equal(t, int64(999), sub.Dropped())
	assert.Equal(t, 0, <-sub.C)
}
