package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminStatusCacheHitAndMiss(t *testing.T) {
	cache := NewAdminStatusCache(time.Minute, nil)

	_, ok := cache.Get(1)
	assert.False(t, ok)

	cache.Set(1, true)
	cache.Set(2, false)

	isAdmin, ok := cache.Get(1)
	assert.True(t, ok)
	assert.True(t, isAdmin)

	isAdmin, ok = cache.Get(2)
	assert.True(t, ok)
	assert.False(t, isAdmin)
}

func TestAdminStatusCacheExpiry(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewAdminStatusCache(time.Minute, func() time.Time { return current })

	cache.Set(1, true)

	_, ok := cache.Get(1)
	assert.True(t, ok)

	current = current.Add(59 * time.Second)
	_, ok = cache.Get(1)
	assert.True(t, ok)

	current = current.Add(2 * time.Second)
	_, ok = cache.Get(1)
	assert.False(t, ok, "entry must expire after the TTL")
}

func TestAdminStatusCacheInvalidate(t *testing.T) {
	cache := NewAdminStatusCache(time.Minute, nil)

	cache.Set(1, false)
	cache.Invalidate(1)

	_, ok := cache.Get(1)
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Winter Open", "winter-open"},
		{"punctuation", "IV: Grand Final!", "iv-grand-final"},
		{"trimmed", "  Spaced Out  ", "spaced-out"},
		{"collapsed", "a   b---c", "a-b-c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}
