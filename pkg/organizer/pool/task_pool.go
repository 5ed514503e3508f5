package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"member-organizer/pkg/logger"
)

// ErrPoolClosed 定义包级错误变量，用于错误比较
var ErrPoolClosed = errors.New("task pool is closed")

// Task receives the submitter's context and a pool-unique task id.
type Task func(ctx context.Context, taskID uint64) error

// Stats counts what the pool has done since it was created.
type Stats struct {
	Completed uint64
	Failed    uint64
	Cancelled uint64
}

// TaskPool runs submitted tasks on a fixed number of workers.
type TaskPool struct {
	logger  logger.Logger
	workers int
	tasks   chan func(workerID int)
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool

	nextID    atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	cancelled atomic.Uint64
}

// NewTaskPool 创建任务池, workers below one are raised to one.
func NewTaskPool(workers int, logger logger.Logger) *TaskPool {
	if workers <= 0 {
		workers = 1
	}
	p := &TaskPool{
		logger:  logger,
		workers: workers,
		tasks:   make(chan func(workerID int), workers*2),
	}
	for i := 0; i < workers; i++ {
		go p.work(i)
	}
	return p
}

func (p *TaskPool) work(workerID int) {
	p.logger.Debug("worker %d started", workerID)
	for run := range p.tasks {
		run(workerID)
	}
	p.logger.Debug("worker %d exited", workerID)
}

// Submit queues a task. A task whose context is done before a worker picks
// it up is counted as cancelled and never runs.
func (p *TaskPool) Submit(ctx context.Context, task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	taskID := p.nextID.Add(1)
	p.wg.Add(1)
	p.tasks <- func(workerID int) {
		defer p.wg.Done()
		if err := ctx.Err(); err != nil {
			p.cancelled.Add(1)
			p.logger.Debug("task %d cancelled before execution: %v", taskID, err)
			return
		}
		p.logger.Debug("worker %d starting task %d", workerID, taskID)
		if err := p.run(ctx, taskID, task); err != nil {
			p.failed.Add(1)
			p.logger.Debug("task %d failed: %v", taskID, err)
			return
		}
		p.completed.Add(1)
	}
	return nil
}

func (p *TaskPool) run(ctx context.Context, taskID uint64, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task %d panicked: %v", taskID, r)
			err = fmt.Errorf("task %d panicked: %v", taskID, r)
		}
	}()
	return task(ctx, taskID)
}

// Wait 等待所有已提交任务完成
func (p *TaskPool) Wait() {
	p.wg.Wait()
}

func (p *TaskPool) Stats() Stats {
	return Stats{
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Cancelled: p.cancelled.Load(),
	}
}

// Close stops accepting tasks. Queued tasks still run.
func (p *TaskPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		close(p.tasks)
		p.closed = true
		p.logger.Debug("task pool closed, %d tasks submitted", p.nextID.Load())
	}
}
