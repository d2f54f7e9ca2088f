package province

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU(4, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", Resolution{Province: "Bali"})
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "Bali", v.Province)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU(2, time.Hour)
	c.Set("a", Resolution{Province: "A"})
	c.Set("b", Resolution{Province: "B"})
	c.Get("a")
	c.Set("c", Resolution{Province: "C"})

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRUDisabled(t *testing.T) {
	c := NewLRU(0, time.Hour)
	c.Set("a", Resolution{Province: "A"})
	_, ok := c.Get("a")
	assert.False(t, ok)
}
