package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

type Memory struct {
	store sync.Map // map[key]*entry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, false, nil
	}

	e := val.(*entry)
	if c.now().After(e.expiresAt) {
		c.store.Delete(key)
		return nil, false, nil
	}

	return e.value, true, nil
}

func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Store(key, &entry{value: value, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *Memory) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
