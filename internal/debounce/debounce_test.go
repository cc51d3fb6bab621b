package debounce_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/kedarrpandya/foodbridge/internal/debounce"
	"github.com/kedarrpandya/foodbridge/internal/observability"
)

func TestNewDebouncer(t *testing.T) {
	logger := observability.NewNoOpLogger()
	debouncer := debounce.NewDebouncer(rate.Every(time.Second), 1, logger)
	assert.NotNil(t, debouncer)
}

func TestDebouncer(t *testing.T) {
	logger := observability.NewNoOpLogger()
	debouncer := debounce.NewDebouncer(rate.Every(time.Millisecond*50), 1, logger)

	count := 0
	debouncer.SetNeedsDebounce()
	assert.True(t, debouncer.Debounce(func() { count++ }))

	debouncer.SetNeedsDebounce()
	assert.False(t, debouncer.Debounce(func() { count++ }))
	assert.True(t, debouncer.NeedsDebounce())

	time.Sleep(time.Millisecond * 150)
	assert.Equal(t, 1, count)

	assert.True(t, debouncer.Flush(func() { count++ }))
	assert.False(t, debouncer.Flush(func() { count++ }))
	assert.Equal(t, 2, count)
}

func TestDebouncer_Stop(t *testing.T) {
	debouncer := debounce.NewDebouncer(rate.Inf, 1, nil)
	debouncer.SetNeedsDebounce()
	debouncer.Stop()

	called := false
	debouncer.Debounce(func() { called = true })
	debouncer.Flush(func() { called = true })
	assert.False(t, called)

	var none *debounce.Debouncer
	assert.False(t, none.Debounce(func() {}))
}

func TestTask_OnlyLastRuns(t *testing.T) {
	task := debounce.NewTask(30 * time.Millisecond)
	var got atomic.Int32

	task.Schedule(func() { got.Store(1) })
	task.Schedule(func() { got.Store(2) })
	task.Schedule(func() { got.Store(3) })
	assert.True(t, task.Pending())

	assert.Eventually(t, func() bool { return got.Load() == 3 }, time.Second, 5*time.Millisecond)
	assert.False(t, task.Pending())
}

func TestTask_Cancel(t *testing.T) {
	task := debounce.NewTask(20 * time.Millisecond)
	var runs atomic.Int32

	task.Schedule(func() { runs.Add(1) })
	task.Cancel()
	assert.False(t, task.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, runs.Load())

	task.Schedule(func() { runs.Add(1) })
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestTask_StopPreventsRuns(t *testing.T) {
	task := debounce.NewTask(10 * time.Millisecond)
	var runs atomic.Int32

	task.Schedule(func() { runs.Add(1) })
	task.Stop()
	task.Schedule(func() { runs.Add(1) })

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, runs.Load())
	assert.False(t, task.Pending())
}

func TestTask_Run(t *testing.T) {
	task := debounce.NewTask(20 * time.Millisecond)
	var runs atomic.Int32
	task.Schedule(func() { runs.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		task.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, runs.Load())
}
