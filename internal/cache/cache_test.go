package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefCache_New(t *testing.T) {
	c := NewRefCache()

	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	_, ok := c.GetCommand(0)
	assert.False(t, ok)
}

func TestRefCache_AddAndGet(t *testing.T) {
	c := NewRefCache()
	c.AddDataref(42, "sim/cockpit/switches/gear")
	c.AddCommand(42, "sim/flight_controls/landing_gear_toggle")

	key, ok := c.GetDataref(42)
	require.True(t, ok)
	assert.Equal(t, "sim/cockpit/switches/gear", key)

	key, ok = c.GetCommand(42)
	require.True(t, ok)
	assert.Equal(t, "sim/flight_controls/landing_gear_toggle", key)

	assert.Equal(t, 2, c.Len())
}

func TestRefCache_NotFound(t *testing.T) {
	c := NewRefCache()
	c.AddDataref(1, "sim/a")

	_, ok := c.GetDataref(2)
	assert.False(t, ok)
	// ids are separate per kind
	_, ok = c.GetCommand(1)
	assert.False(t, ok)
}

func TestRefCache_Reset(t *testing.T) {
	c := NewRefCache()
	c.AddDataref(1, "sim/a")
	c.AddCommand(2, "sim/b")

	c.Reset()

	assert.Equal(t, 0, c.Len())
	_, ok := c.GetDataref(1)
	assert.False(t, ok)
}

func TestRefCache_Concurrent(t *testing.T) {
	c := NewRefCache()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id uint64) {
			defer wg.Done()
			c.AddDataref(id, "sim/x")
		}(uint64(i))
		go func(id uint64) {
			defer wg.Done()
			c.GetDataref(id)
		}(uint64(i))
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}

func TestSafeCounter_InitialValue(t *testing.T) {
	var c SafeCounter
	assert.Equal(t, 0, c.Value())
}

func TestSafeCounter_Inc(t *testing.T) {
	var c SafeCounter
	c.Inc()
	c.Inc()
	assert.Equal(t, 2, c.Value())
}

func TestSafeCounter_Concurrent(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, c.Value())
}
