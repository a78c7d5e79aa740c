// Package worklist implements the FIFO and priority work queues that
// feed the worker pool (§4.5). Both variants are safe for concurrent
// producers and consumers. The FIFO variant serves tasks and stop
// sentinels strictly in insertion order, so a stop drains after every
// task Put before it. In the priority variant stop sentinels compare
// greater than any task, so they drain last regardless of how many
// tasks were enqueued after them in wall-clock time.
package worklist

// Task is one unit of enqueued work.
type Task struct {
	// Run executes the task. Never nil for a real task.
	Run func()

	// SizeFunc computes this task's estimated size, invoked once at
	// Put time by a priority Worklist, before heap placement (§4.5). A
	// nil SizeFunc means the task is a whole-CDB reducer with no size;
	// per SPEC_FULL.md §12 this is treated as size 0 under both
	// longest-first and shortest-first strategies.
	SizeFunc func() int
}

// Worklist is a queue of Tasks interleaved with stop sentinels.
type Worklist interface {
	// Put enqueues a task.
	Put(t Task)

	// PutStop enqueues a stop sentinel. A stop always drains after every
	// task Put before it; a priority Worklist also drains it after tasks
	// Put later, while a FIFO serves it in insertion order.
	PutStop()

	// Get blocks until an item is available and returns it. If the
	// returned item is a stop sentinel, ok is false and t is the zero
	// Task; a worker that receives a stop must exit without calling Get
	// again (§4.6).
	Get() (t Task, ok bool)
}
