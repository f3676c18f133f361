package pipeline

import "context"

// Task is a Sync running in the background.
type Task struct {
	done chan struct{}
	res  *Result
}

// Start runs Sync on its own goroutine. The host must not be modified by
// anyone else until the task is done.
func (r *Runner) Start(ctx context.Context, host Host) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.res = r.Sync(ctx, host)
	}()
	return t
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its result.
func (t *Task) Wait() *Result {
	<-t.done
	return t.res
}
