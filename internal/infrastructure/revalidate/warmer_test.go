package revalidate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWarmer(baseURL string, ringLog *RingLog) *Warmer {
	return &Warmer{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: time.Second},
		ringLog:     ringLog,
		maxAttempts: 3,
		backoff:     time.Millisecond,
	}
}

func TestWarmerSucceedsFirstTry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ringLog := NewRingLog(10)
	w := newTestWarmer(srv.URL, ringLog)

	err := w.Warm(context.Background(), "/alice")
	require.NoError(t, err)

	entries := ringLog.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "/alice", entries[0].Path)
	assert.Equal(t, 1, entries[0].Attempts)
	assert.True(t, entries[0].Success)
}

func TestWarmerRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ringLog := NewRingLog(10)
	w := newTestWarmer(srv.URL, ringLog)

	err := w.Warm(context.Background(), "/alice/first-post")
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())

	entries := ringLog.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.True(t, entries[0].Success)
}

func TestWarmerGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ringLog := NewRingLog(10)
	w := newTestWarmer(srv.URL, ringLog)

	err := w.Warm(context.Background(), "/broken")
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())

	entries := ringLog.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.NotEmpty(t, entries[0].Detail)
}

func TestWarmerTreatsAllNonSuccessAlike(t *testing.T) {
	// A 404 and a 500 get the same retry treatment.
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}))

		w := newTestWarmer(srv.URL, NewRingLog(10))
		err := w.Warm(context.Background(), "/x")
		require.Error(t, err)
		assert.EqualValues(t, 3, calls.Load())

		srv.Close()
	}
}
