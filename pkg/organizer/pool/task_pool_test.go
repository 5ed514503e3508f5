package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"member-organizer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// 测试正常提交和执行任务
func TestTaskPool_NormalExecution(t *testing.T) {
	pool := NewTaskPool(2, logger.NewNopLogger())
	defer pool.Close()

	var counter int32
	taskCount := 5
	for i := 0; i < taskCount; i++ {
		err := pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error {
			atomic.AddInt32(&counter, 1)
			return nil
		})
		require.NoError(t, err)
	}
	pool.Wait()

	assert.Equal(t, int32(taskCount), atomic.LoadInt32(&counter))
	assert.Equal(t, uint64(taskCount), pool.Stats().Completed)
}

// 测试任务在等待执行时被取消
func TestTaskPool_CancelBeforeExecution(t *testing.T) {
	pool := NewTaskPool(1, logger.NewNopLogger())
	defer pool.Close()

	err := pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = pool.Submit(ctx, func(ctx context.Context, taskID uint64) error {
		t.Error("cancelled task was executed")
		return nil
	})
	require.NoError(t, err)

	pool.Wait()
	assert.Equal(t, uint64(1), pool.Stats().Cancelled)
}

func TestTaskPool_FailuresAndPanics(t *testing.T) {
	pool := NewTaskPool(2, logger.NewNopLogger())
	defer pool.Close()

	require.NoError(t, pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error {
		return errors.New("boom")
	}))
	require.NoError(t, pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error {
		panic("kaboom")
	}))
	require.NoError(t, pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error {
		return nil
	}))
	pool.Wait()

	stats := pool.Stats()
	assert.Equal(t, uint64(2), stats.Failed)
	assert.Equal(t, uint64(1), stats.Completed)
}

func TestTaskPool_UniqueTaskIDs(t *testing.T) {
	pool := NewTaskPool(4, logger.NewNopLogger())
	defer pool.Close()

	ids := make(chan uint64, 20)
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error {
			ids <- taskID
			return nil
		}))
	}
	pool.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate task id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 20)
}

// 测试关闭后提交
func TestTaskPool_SubmitAfterClose(t *testing.T) {
	pool := NewTaskPool(1, logger.NewNopLogger())
	pool.Close()
	pool.Close()

	err := pool.Submit(context.Background(), func(ctx context.Context, taskID uint64) error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}
