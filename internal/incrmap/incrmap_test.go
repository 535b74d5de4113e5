package incrmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsIncreasingKeys(t *testing.T) {
	m := New[string]()
	k1 := m.Add("a")
	k2 := m.Add("b")
	k3 := m.Add("c")
	assert.Less(t, int(k1), int(k2))
	assert.Less(t, int(k2), int(k3))
}

func TestRemoveRetiresKey(t *testing.T) {
	m := New[int]()
	k1 := m.Add(1)
	k2 := m.Add(2)

	removed := m.Remove(k1)
	assert.Equal(t, k1, removed)

	_, ok := m.Get(k1)
	assert.False(t, ok)

	v, ok := m.Get(k2)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	// the retired key is never reissued
	k3 := m.Add(3)
	assert.NotEqual(t, k1, k3)
	assert.Greater(t, int(k3), int(k2))
}

func TestIterVisitsAllLiveEntries(t *testing.T) {
	m := New[int]()
	m.Add(10)
	m.Add(20)
	removed := m.Add(30)
	m.Remove(removed)

	seen := map[Key]int{}
	m.Iter(func(k Key, v int) { seen[k] = v })
	assert.Len(t, seen, 2)
	assert.Equal(t, 2, m.Len())
}
