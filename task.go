package frost

import (
	"github.com/TheSnowfield/frost/internal/list"
)

// Flag is a bitset over per-task scheduling modifiers.
type Flag uint32

const (
	// FlagFreeze skips invocation entirely while set.
	FlagFreeze Flag = 1 << iota
	// FlagUnfreezeByChanWrite, combined with FlagFreeze, re-enables a
	// frozen task on the pass where its inbox becomes non-empty, forcing
	// an immediate fire.
	FlagUnfreezeByChanWrite
)

// Callback is the shape of a task's body. It receives its owning Task (so it
// can reach TLS/channel/self-deletion) and the argument slice captured at
// creation time. This replaces the original C signature's 0..16-word opaque
// variadic dispatch (spec.md §9's recommended approach for implementers
// without native heterogeneous variadic dispatch: accept a single opaque
// slice and let the body unpack it).
type Callback func(t *Task, args []any)

// IntervalCallback is the shape of a periodic task's body: it takes no
// arguments, matching spec.md §4.2's "fn takes zero arguments" for
// Interval.
type IntervalCallback func(t *Task)

// Task is the unit of scheduling: a callback plus the state the scheduler
// needs to decide when to fire it and what to do afterwards.
type Task struct {
	engine *Engine
	ref    *list.Node[*Task]

	name     string
	callback func(args []any)

	flags Flag

	intervalMs uint64
	dueTick    uint64
	refill     bool
	execTime   uint64
	score      int64
	fireCount  uint64

	args []any

	awaiter *Awaiter

	tls          []any
	tlsAllocated bool

	// chan mirrors the original frost_task_ctx_t.chan struct: the inbox
	// (chanRef) and the outbound bind list (chanBind) are independently
	// nullable — a task may hold bind entries pointing at peers without
	// ever allocating its own inbox, and vice versa.
	chanRef  *Channel
	chanBind *list.List[*Task]
}

// Name returns the task's display name.
func (t *Task) Name() string { return t.name }

// Awaiter returns the task's awaiter, if it was created with RunArgs/Run.
// Interval tasks have no awaiter.
func (t *Task) Awaiter() *Awaiter { return t.awaiter }

// FireCount returns the number of times the task has fired, when the
// owning Engine was constructed with WithDebug(true); otherwise always 0,
// mirroring the C FROST_DEBUG-gated counter.
func (t *Task) FireCount() uint64 { return t.fireCount }

func newTask(e *Engine, name string, callback func(args []any)) *Task {
	return &Task{engine: e, name: name, callback: callback}
}

// Run creates a one-shot asynchronous task. Requires the engine not be
// closed; otherwise the returned Awaiter is immediately resolved with
// NeedInitialize. Mirrors frost_task_run/frost_task_run_ex.
func (e *Engine) Run(name string, fn Callback) *Awaiter {
	return e.RunArgs(name, fn)
}

// RunArgs is Run with captured arguments, forwarded to fn verbatim.
func (e *Engine) RunArgs(name string, fn Callback, args ...any) *Awaiter {
	if e.closed {
		return AwaiterFromValue(nil, NeedInitialize)
	}
	if fn == nil {
		return AwaiterFromValue(nil, InvalidParameter)
	}

	aw := NewAwaiter()
	t := newTask(e, name, nil)
	t.args = args
	t.awaiter = aw
	t.refill = false
	t.callback = func(args []any) { fn(t, args) }

	t.ref = e.tasks.PushBack(t)
	e.markDirty()
	e.logf("task", LevelDebug, "task created", map[string]any{"name": name, "kind": "async"})

	return aw
}

// Interval creates a periodic task firing every periodMs milliseconds,
// starting one period from now. Requires the engine not be closed.
// Mirrors frost_task_interval.
func (e *Engine) Interval(name string, periodMs uint64, fn IntervalCallback) (*Task, Kind) {
	if e.closed {
		return nil, NeedInitialize
	}
	if fn == nil || periodMs == 0 {
		return nil, InvalidParameter
	}

	t := newTask(e, name, nil)
	t.refill = true
	t.intervalMs = periodMs
	t.dueTick = e.cfg.port.Now() + periodMs
	t.score = int64(periodMs)
	t.callback = func([]any) { fn(t) }

	t.ref = e.tasks.PushBack(t)
	e.markDirty()
	e.logf("task", LevelDebug, "task created", map[string]any{"name": name, "kind": "interval", "interval_ms": periodMs})

	return t, Ok
}

// Delete removes t from the scheduler and releases everything it owns: its
// awaiter is cancelled (not freed — the caller still owns it, see
// Awaiter.Cancel), its TLS is released, and its channel is torn down
// (broadcasting Close to bound peers). Mirrors frost_task_delete.
func (e *Engine) Delete(t *Task) Kind {
	if t == nil {
		return InvalidParameter
	}
	if t.ref == nil || t.engine != e {
		return InvalidParameter
	}
	e.deleteTask(t)
	e.markDirty()
	return Ok
}

func (e *Engine) deleteTask(t *Task) {
	if t.ref != nil {
		e.tasks.Remove(t.ref)
		t.ref = nil
	}

	if t.awaiter != nil && !t.awaiter.Finished() {
		t.awaiter.Cancel()
	}

	if t.tlsAllocated {
		t.tls = nil
		t.tlsAllocated = false
	}

	if t.chanRef != nil {
		e.chanDestroy(t)
	}

	if e.current == t {
		e.current = nil
	}

	e.logf("task", LevelDebug, "task deleted", map[string]any{"name": t.name})
}

// SetFlag sets the given flags on t in addition to any already set.
func (t *Task) SetFlag(f Flag) Kind {
	t.flags |= f
	return Ok
}

// ClearFlag clears the given flags on t.
func (t *Task) ClearFlag(f Flag) Kind {
	t.flags &^= f
	return Ok
}

// GetFlag reports whether every bit in f is currently set on t.
func (t *Task) GetFlag(f Flag) bool {
	return t.flags&f == f
}

func (t *Task) hasFlag(f Flag) bool { return t.flags&f != 0 }

// Sleep drives the scheduler (via nested Schedule calls) until at least ms
// milliseconds of engine tick time have elapsed. Like Engine.Await, this is
// cooperative: other due tasks continue to run while the caller sleeps.
func (e *Engine) Sleep(ms uint64) Kind {
	if e.closed {
		return NeedInitialize
	}
	start := e.cfg.port.Now()
	for {
		if e.cfg.port.Now()-start >= ms {
			return Ok
		}
		if kind := e.Schedule(); kind != Ok {
			return kind
		}
	}
}

// GetTimeTick returns the current port tick, in milliseconds.
func (e *Engine) GetTimeTick() uint64 { return e.cfg.port.Now() }

// Enumerator is the external cursor state for Enumerate, mirroring
// frost_task_enum_t.
type Enumerator struct {
	started bool
	node    *list.Node[*Task]
}

// Enumerate advances the cursor and reports the next task. Returns Eof once
// the sequence is exhausted. Mirrors frost_enumerate_tasks.
func (e *Engine) Enumerate(it *Enumerator) (*Task, Kind) {
	if it == nil {
		return nil, InvalidParameter
	}
	if !it.started {
		it.started = true
		it.node = e.tasks.Front()
	} else if it.node != nil {
		it.node = it.node.Next()
	}
	if it.node == nil {
		return nil, Eof
	}
	return it.node.Value, Ok
}

// elapsed is a small helper used by scheduler.go for exec_time measurement.
func elapsed(startMs, endMs uint64) uint64 {
	if endMs < startMs {
		return 0
	}
	return endMs - startMs
}
