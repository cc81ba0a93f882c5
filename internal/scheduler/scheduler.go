package scheduler

import (
	"sync/atomic"
	"time"
)

// Scheduler owns delayed continuations. Callbacks never run on the timer
// goroutine directly: they are handed to the runner, which posts them
// onto the dispatch loop so handler run-to-completion holds.
type Scheduler struct {
	run func(fn func())
}

// New creates a scheduler that executes fired callbacks via run.
func New(run func(fn func())) *Scheduler {
	return &Scheduler{run: run}
}

// After schedules fn once after d. The returned task can be cancelled up
// until the callback actually executes: cancellation is re-checked at
// run time, so a Cancel that lands after the timer fired but before the
// runner got to the callback still suppresses it.
func (that *Scheduler) After(d time.Duration, fn func()) *Task {
	task := &Task{}

	task.timer = time.AfterFunc(d, func() {
		if task.cancelled.Load() {
			return
		}
		that.run(func() {
			if task.cancelled.Load() {
				return
			}
			fn()
		})
	})

	return task
}

// Task is a single cancellable scheduled callback.
type Task struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

// Cancel stops the task. Safe to call multiple times and after firing.
func (that *Task) Cancel() {
	if that == nil {
		return
	}
	that.cancelled.Store(true)
	that.timer.Stop()
}

// TaskSet tracks tasks tied to one piece of state so a reset can drop
// them all, e.g. a stale game-over modal must not appear after the
// player has left the room.
type TaskSet struct {
	tasks []*Task
}

func (that *TaskSet) Add(task *Task) {
	that.tasks = append(that.tasks, task)
}

func (that *TaskSet) CancelAll() {
	for _, task := range that.tasks {
		task.Cancel()
	}
	that.tasks = nil
}
