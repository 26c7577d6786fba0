package frost

// Awaiter is a synchronous-looking join handle on an asynchronous task,
// supporting timeout and cancellation. It is owned by whoever called
// Run/RunArgs — the engine never frees it, only ever marks it Cancelled
// when the owning task is deleted (see Engine.Delete). Settling (Finish,
// Cancel, or the synthetic resolution from AwaiterFromValue) happens at
// most once; later calls are no-ops, matching the teacher's simple promise
// settle-once idiom.
type Awaiter struct {
	finished bool
	result   any
	status   Kind
	timeout  uint64 // milliseconds; 0 = infinite
}

// NewAwaiter constructs a pending Awaiter, attached to a just-launched
// task. Mirrors awaiter_create.
func NewAwaiter() *Awaiter {
	return &Awaiter{status: Ok}
}

// AwaiterFromValue constructs an already-resolved Awaiter, used to
// communicate a synchronous failure (e.g. the engine being closed) through
// the same type a real async Run would have returned. Mirrors
// awaiter_from_value.
func AwaiterFromValue(value any, status Kind) *Awaiter {
	return &Awaiter{finished: true, result: value, status: status}
}

// Finished reports whether the awaiter has settled.
func (a *Awaiter) Finished() bool { return a.finished }

// Result returns the settled result, or nil if still pending or the
// awaiter settled via cancellation/timeout.
func (a *Awaiter) Result() any { return a.result }

// Status returns the settled status, or Ok while still pending.
func (a *Awaiter) Status() Kind { return a.status }

// SetTimeout configures the maximum duration, in milliseconds, Await will
// wait before giving up with TaskTimeout. 0 (the default) means wait
// forever.
func (a *Awaiter) SetTimeout(ms uint64) {
	a.timeout = ms
}

// Finish settles the awaiter successfully with result. Called by a task's
// own body to announce completion. A no-op if already settled.
func (a *Awaiter) Finish(result any) Kind {
	if a.finished {
		return Ok
	}
	a.result = result
	a.status = Ok
	a.finished = true
	return Ok
}

// Cancel settles the awaiter as TaskCanceled. Called by the engine when the
// owning task is deleted while the awaiter is still pending; a no-op if
// already settled.
func (a *Awaiter) Cancel() Kind {
	if a.finished {
		return Ok
	}
	a.result = nil
	a.status = TaskCanceled
	a.finished = true
	return Ok
}

// Await blocks the caller — by repeatedly driving the engine's scheduler —
// until a is settled, a's timeout elapses, or the scheduler reports a
// non-Ok status. a may be nil, in which case a synthetic resolved Awaiter
// with InvalidParameter is returned immediately. Mirrors awaiter_await.
func (e *Engine) Await(a *Awaiter) *Awaiter {
	if a == nil {
		return AwaiterFromValue(nil, InvalidParameter)
	}

	start := e.cfg.port.Now()
	for {
		if kind := e.Schedule(); kind != Ok {
			if !a.finished {
				a.result = nil
				a.status = FatalError
				a.finished = true
			}
			return a
		}

		if a.finished {
			return a
		}

		if a.timeout != 0 && e.cfg.port.Now()-start >= a.timeout {
			a.result = nil
			a.status = TaskTimeout
			a.finished = true
			return a
		}
	}
}
