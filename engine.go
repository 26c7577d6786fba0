// Package frost implements a cooperative, single-threaded task engine: a
// scheduler multiplexing one-shot and interval tasks on a single execution
// context, plus three primitives built on top of it — Awaiters (synchronous
// joins on async tasks), Task-Local Storage, and Channels (ring-buffered
// inboxes with broadcast bind lists).
//
// There is no preemption and no locking inside the engine: exactly one
// logical thread of execution exists at a time, whether that is the
// embedder's outer loop or a nested Schedule call made from within a task
// callback (Engine.Sleep, Engine.Await and explicit yields all work this
// way). See Engine.Schedule for the scheduling contract.
package frost

import "github.com/TheSnowfield/frost/internal/list"

// Engine is process state scoped to a lifecycle: New through Close.
// Re-creating an Engine after Close is always fine — unlike the original C
// implementation, frost never uses a package-level singleton, so a process
// may run as many independent engines as it likes (see DESIGN.md's Open
// Question decision on this point).
type Engine struct {
	cfg *engineConfig

	tasks   *list.List[*Task]
	current *Task

	tick     uint64
	dirty    bool
	realtime bool

	closed bool
}

// New constructs and initializes an Engine. Mirrors frost_init: allocates
// the task sequence immediately, there is no separate "not yet initialized"
// state to observe from Go (unlike the C API's frost_is_initialized, which
// exists because init/uninit are free functions against a global).
func New(opts ...Option) *Engine {
	return &Engine{
		cfg:   resolveOptions(opts),
		tasks: list.New[*Task](),
	}
}

// Closed reports whether Close has been called. Run, RunArgs, Interval,
// Schedule and Sleep against a closed Engine return NeedInitialize,
// mirroring frost_is_initialized's purpose for the global-singleton API; the
// TLS, channel and Delete operations do not check it.
func (e *Engine) Closed() bool { return e.closed }

// Close deletes every remaining task (releasing each one's TLS, channel and
// awaiter) before discarding the task sequence.
//
// The original C frost_uninit just destroys the task list without touching
// individual tasks' TLS/channel/awaiter state — spec.md §9 calls this out as
// a leak and instructs the rewrite to iterate and delete each task first.
// This does that.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	for n := e.tasks.Front(); n != nil; {
		next := n.Next()
		e.deleteTask(n.Value)
		n = next
	}
	e.closed = true
	e.current = nil
	e.logf("engine", LevelInfo, "engine closed", nil)
	return nil
}

// Context returns the task currently executing on this engine, if any.
// Mirrors frost_task_get_context.
func (e *Engine) Context() (*Task, bool) {
	if e.current == nil {
		return nil, false
	}
	return e.current, true
}

// Tick returns the engine's cached tick time, as of the last Schedule pass
// or task-firing decision.
func (e *Engine) Tick() uint64 { return e.tick }

// IsRealtime reports whether every task fired during the last Schedule pass
// had non-negative score (i.e. none of them ran behind schedule).
func (e *Engine) IsRealtime() bool { return e.realtime }

func (e *Engine) markDirty() { e.dirty = true }
