//go:build !integration

package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/guttosm/parcel-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu      sync.Mutex
	batches [][]*model.LogEntry
	err     error
}

func (w *recordingWriter) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batches = append(w.batches, entries)
	return w.err
}

func (w *recordingWriter) entries() []*model.LogEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []*model.LogEntry
	for _, b := range w.batches {
		out = append(out, b...)
	}
	return out
}

func quietConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{BufferSize: 16, NumWorkers: 1, BatchSize: 2, FlushInterval: time.Hour, WriteTimeout: time.Second}
}

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.FlushInterval)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestAsyncLogger_NilWriter(t *testing.T) {
	al := NewAsyncLogger(nil, DefaultAsyncLoggerConfig())

	assert.Nil(t, al)
	assert.False(t, al.Log(&model.LogEntry{}))
	assert.NotPanics(t, al.Stop)
	assert.Equal(t, AsyncLoggerStats{}, al.Stats())
}

func TestAsyncLogger_WritesInBatches(t *testing.T) {
	w := &recordingWriter{}
	al := NewAsyncLogger(w, quietConfig())

	for i := 0; i < 5; i++ {
		require.True(t, al.Log(&model.LogEntry{Message: "HTTP request"}))
	}
	al.Stop()

	assert.Len(t, w.entries(), 5)
	for _, b := range w.batches {
		assert.LessOrEqual(t, len(b), 2)
	}
	assert.Equal(t, AsyncLoggerStats{Enqueued: 5, Written: 5}, al.Stats())
}

func TestAsyncLogger_FlushesOnInterval(t *testing.T) {
	w := &recordingWriter{}
	cfg := quietConfig()
	cfg.BatchSize = 100
	cfg.FlushInterval = 10 * time.Millisecond
	al := NewAsyncLogger(w, cfg)
	t.Cleanup(al.Stop)

	al.Log(&model.LogEntry{Message: "pack"})

	assert.Eventually(t, func() bool { return len(w.entries()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	blocking := &mocks.MockLoggingService{}
	blocking.On("CreateLogs", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			started <- struct{}{}
			<-release
		}).
		Return(nil)

	al := NewAsyncLogger(blocking, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1, BatchSize: 1, FlushInterval: time.Hour})

	require.True(t, al.Log(&model.LogEntry{Message: "first"}))
	<-started
	assert.True(t, al.Log(&model.LogEntry{Message: "buffered"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "dropped"}))

	close(release)
	al.Stop()

	assert.Equal(t, AsyncLoggerStats{Enqueued: 2, Dropped: 1, Written: 2}, al.Stats())
	blocking.AssertNumberOfCalls(t, "CreateLogs", 2)
}

func TestAsyncLogger_CountsWriteErrors(t *testing.T) {
	w := &recordingWriter{err: errors.New("mongo down")}
	al := NewAsyncLogger(w, quietConfig())

	al.Log(&model.LogEntry{})
	al.Log(&model.LogEntry{})
	al.Stop()

	stats := al.Stats()
	assert.Equal(t, int64(2), stats.Errors)
	assert.Zero(t, stats.Written)
}

func TestAsyncLogger_RejectsAfterStop(t *testing.T) {
	al := NewAsyncLogger(&recordingWriter{}, quietConfig())
	al.Stop()
	al.Stop()

	assert.False(t, al.Log(&model.LogEntry{}))
}
