// Package workqueue runs independent tasks with a pluggable concurrency
// strategy. The validation engine uses it to fan rule evaluations out over a
// shared read-only snapshot; the importer uses it for per-sheet ingestion.
package workqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Queue manages task execution with configurable concurrency control.
// The concurrency strategy determines how tasks are allowed to run:
// - SerializedStrategy: one task at a time (default)
// - ParallelStrategy: unlimited parallel tasks
// - ThrottledStrategy: up to N concurrent tasks
type Queue struct {
	mu        sync.Mutex
	tasks     []*TaskState
	cancelled bool

	strategy ConcurrencyStrategy

	// kick wakes the scheduler when a task is enqueued or completes.
	kick chan struct{}
	// wg tracks running goroutines
	wg sync.WaitGroup

	// Cancellation context for running tasks
	ctx    context.Context
	cancel context.CancelFunc

	logger *zap.Logger
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithStrategy sets the concurrency strategy.
func WithStrategy(strategy ConcurrencyStrategy) QueueOption {
	return func(q *Queue) {
		if strategy != nil {
			q.strategy = strategy
		}
	}
}

// New creates a new work queue with the given options. The default strategy
// serializes tasks.
func New(logger *zap.Logger, opts ...QueueOption) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		tasks:    make([]*TaskState, 0),
		strategy: NewSerializedStrategy(),
		kick:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.Named("workqueue"),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Enqueue adds a task. Tasks enqueued after Wait has started are still
// picked up as long as Wait has not returned.
func (q *Queue) Enqueue(task Task) {
	if task == nil {
		return
	}
	q.mu.Lock()
	if q.cancelled {
		state := NewTaskState(task)
		state.SetStatus(TaskStatusCancelled)
		q.tasks = append(q.tasks, state)
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, NewTaskState(task))
	q.mu.Unlock()
	q.wake()
}

// Wait drives the queue until every task reaches a terminal state or ctx is
// cancelled. It returns the joined errors of all failed tasks, or the context
// error if the run was abandoned.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			q.Cancel()
			q.wg.Wait()
			return err
		}

		q.scheduleReady()
		if q.allTerminal() {
			break
		}

		select {
		case <-ctx.Done():
			q.Cancel()
			q.wg.Wait()
			return ctx.Err()
		case <-q.kick:
		}
	}

	q.wg.Wait()
	return q.taskErrors()
}

// scheduleReady starts every pending task the strategy allows, in enqueue
// order.
func (q *Queue) scheduleReady() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.cancelled {
		for _, state := range q.tasks {
			if state.GetStatus() == TaskStatusPending {
				state.SetStatus(TaskStatusCancelled)
			}
		}
		return
	}

	for _, state := range q.tasks {
		if state.GetStatus() != TaskStatusPending {
			continue
		}
		if !q.strategy.CanStart() {
			break
		}
		q.strategy.OnStart()
		state.SetStatus(TaskStatusRunning)
		q.wg.Add(1)
		go q.run(state)
	}
}

// run executes one task and records its outcome. A panicking task is
// converted into a task failure so one bad rule cannot take the run down.
func (q *Queue) run(state *TaskState) {
	defer q.wg.Done()
	defer q.wake()
	defer q.strategy.OnComplete()

	task := state.Task
	q.logger.Debug("task started", zap.String("task", task.Name()))

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %s panicked: %v", task.Name(), r)
			}
		}()
		return task.Execute(q.ctx)
	}()

	if err != nil {
		state.SetError(fmt.Errorf("%s: %w", task.Name(), err))
		state.SetStatus(TaskStatusFailed)
		q.logger.Warn("task failed", zap.String("task", task.Name()), zap.Error(err))
		return
	}

	state.SetStatus(TaskStatusCompleted)
	q.logger.Debug("task completed", zap.String("task", task.Name()))
}

// Cancel stops the queue: running tasks see their context cancelled and
// pending tasks are marked cancelled.
func (q *Queue) Cancel() {
	q.mu.Lock()
	q.cancelled = true
	for _, state := range q.tasks {
		if state.GetStatus() == TaskStatusPending {
			state.SetStatus(TaskStatusCancelled)
		}
	}
	q.mu.Unlock()
	q.cancel()
	q.wake()
}

// CompletedCount returns how many tasks finished successfully.
func (q *Queue) CompletedCount() int {
	return q.countByStatus(TaskStatusCompleted)
}

// FailedCount returns how many tasks failed.
func (q *Queue) FailedCount() int {
	return q.countByStatus(TaskStatusFailed)
}

// Snapshots returns an immutable view of every task's state, in enqueue
// order.
func (q *Queue) Snapshots() []TaskSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]TaskSnapshot, 0, len(q.tasks))
	for _, state := range q.tasks {
		out = append(out, state.Snapshot())
	}
	return out
}

func (q *Queue) countByStatus(status TaskStatus) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, state := range q.tasks {
		if state.GetStatus() == status {
			n++
		}
	}
	return n
}

func (q *Queue) allTerminal() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, state := range q.tasks {
		switch state.GetStatus() {
		case TaskStatusPending, TaskStatusRunning:
			return false
		}
	}
	return true
}

func (q *Queue) taskErrors() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	var errs []error
	for _, state := range q.tasks {
		if err := state.GetError(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (q *Queue) wake() {
	select {
	case q.kick <- struct{}{}:
	default:
	}
}
