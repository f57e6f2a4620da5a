package infrastructure

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 4)
	wp.Start()

	var done int32
	for i := 0; i < 100; i++ {
		require.NoError(t, wp.Submit(func(context.Context) error {
			atomic.AddInt32(&done, 1)
			return nil
		}))
	}

	require.NoError(t, wp.Wait())
	assert.Equal(t, int32(100), atomic.LoadInt32(&done))
}

func TestWorkerPool_FirstErrorCancels(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 2)
	wp.Start()

	boom := errors.New("insert failed")
	_ = wp.Submit(func(context.Context) error { return boom })

	err := wp.Wait()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, wp.Submit(func(context.Context) error { return nil }), ErrPoolStopped)
}

func TestWorkerPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 0)
	wp.Start()

	ran := false
	require.NoError(t, wp.Submit(func(context.Context) error { ran = true; return nil }))
	require.NoError(t, wp.Wait())
	assert.True(t, ran)
}

// BenchmarkWorkerPool_4Workers_FastTasks teste avec 4 workers
func BenchmarkWorkerPool_4Workers_FastTasks(b *testing.B) {
	wp := NewWorkerPool(context.Background(), 4)
	wp.Start()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = wp.Submit(func(context.Context) error {
			_ = 1 + 1
			return nil
		})
	}
	_ = wp.Wait()
}
