// Package cache holds small mutex-guarded containers shared by the resolver
// and the worker pool.
package cache

import (
	"sync"
)

// RefCache caches resolved dataref and command names by numeric id, so a
// batch resolving the same ids repeatedly only hits storage once per id.
// Dataref and command ids live in separate namespaces.
type RefCache struct {
	mu       sync.Mutex
	datarefs map[uint64]string
	commands map[uint64]string
}

func NewRefCache() *RefCache {
	c := &RefCache{}
	c.Reset()
	return c
}

// Reset drops every cached name.
func (c *RefCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datarefs = make(map[uint64]string)
	c.commands = make(map[uint64]string)
}

type kind int

const (
	datarefKind kind = iota
	commandKind
)

func (c *RefCache) GetDataref(id uint64) (string, bool) { return c.get(datarefKind, id) }

func (c *RefCache) GetCommand(id uint64) (string, bool) { return c.get(commandKind, id) }

func (c *RefCache) AddDataref(id uint64, name string) { c.add(datarefKind, id, name) }

func (c *RefCache) AddCommand(id uint64, name string) { c.add(commandKind, id, name) }

// Len returns the number of cached datarefs and commands.
func (c *RefCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.datarefs) + len(c.commands)
}

// names must be called with mu held.
func (c *RefCache) names(k kind) map[uint64]string {
	if k == commandKind {
		return c.commands
	}
	return c.datarefs
}

func (c *RefCache) get(k kind, id uint64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names(k)[id]
	return name, ok
}

func (c *RefCache) add(k kind, id uint64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names(k)[id] = name
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
