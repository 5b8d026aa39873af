package revalidate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingLogEmpty(t *testing.T) {
	r := NewRingLog(10)
	assert.Empty(t, r.Entries())
}

func TestRingLogNewestFirst(t *testing.T) {
	r := NewRingLog(10)
	r.Add(Entry{Path: "/first", Time: time.Now()})
	r.Add(Entry{Path: "/second", Time: time.Now()})
	r.Add(Entry{Path: "/third", Time: time.Now()})

	entries := r.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "/third", entries[0].Path)
	assert.Equal(t, "/second", entries[1].Path)
	assert.Equal(t, "/first", entries[2].Path)
}

func TestRingLogOverwritesOldest(t *testing.T) {
	r := NewRingLog(10)
	for i := 0; i < 25; i++ {
		r.Add(Entry{Path: fmt.Sprintf("/p%d", i)})
	}

	entries := r.Entries()
	require.Len(t, entries, 10)
	assert.Equal(t, "/p24", entries[0].Path)
	assert.Equal(t, "/p15", entries[9].Path)
}

func TestRingLogDefaultCapacity(t *testing.T) {
	r := NewRingLog(0)
	for i := 0; i < 15; i++ {
		r.Add(Entry{Path: fmt.Sprintf("/p%d", i)})
	}
	assert.Len(t, r.Entries(), 10)
}
