package frost

// Schedule performs a single pass over the task sequence, head to tail,
// firing every task that is due. One call is one pass; callers that want to
// run forever call Schedule in a loop (the embedder's outer loop), and
// anything that needs to block until a condition holds — Engine.Await,
// Engine.Sleep, an explicit yield from inside a callback — does so by
// calling Schedule repeatedly itself.
//
// This is a close-to-literal transcription of the original
// frost_schedule_tasks (see DESIGN.md): self-skip, freeze gate, timing,
// fire, refill-or-delete, the realtime check, a dirty-flag pass restart and
// priority promotion, in that order, per task.
func (e *Engine) Schedule() Kind {
	if e.closed {
		return NeedInitialize
	}

	isRealtime := true
	var lastScore int64

	for n := e.tasks.Front(); n != nil; n = n.Next() {
		t := n.Value

		// 1. self-skip: a task never re-invokes itself reentrantly.
		if e.current == t {
			continue
		}

		// 2. freeze gate.
		if t.hasFlag(FlagFreeze) {
			if !t.hasFlag(FlagUnfreezeByChanWrite) {
				continue
			}
			if t.chanRef == nil || t.chanRef.inbox.Empty() {
				continue
			}
			// unfreeze: fire immediately this pass.
			t.dueTick = e.tick
		}

		// 3. timing.
		now := e.cfg.port.Now()
		e.tick = now

		if t.intervalMs == 0 || e.tick >= t.dueTick {
			measureStart := e.tick

			// 4. fire: install context, invoke, restore.
			prev := e.current
			e.current = t
			if e.cfg.debug {
				t.fireCount++
			}
			t.callback(t.args)
			e.current = prev

			// 5. post-fire.
			if t.refill {
				if t.score > 0 {
					t.dueTick += t.intervalMs
				} else {
					t.dueTick = e.tick - t.execTime + t.intervalMs
				}

				now2 := e.cfg.port.Now()
				e.tick = now2
				t.execTime = elapsed(measureStart, now2)
				t.score = int64(t.dueTick) - int64(now2)
			} else {
				e.deleteTask(t)
			}

			// realtime flag: only tasks fired this pass count, and the
			// flag is published even when the pass is cut short below.
			if t.score < 0 {
				isRealtime = false
			}

			// 6. dirty-flag pass restart: if the task sequence was
			// mutated during the callback, bail out of this pass
			// entirely. The caller gets a fresh pass on the next
			// Schedule call.
			if e.dirty {
				e.current = nil
				e.dirty = false
				e.realtime = isRealtime
				e.logf("scheduler", LevelDebug, "pass restarted: task sequence is dirty", nil)
				return Ok
			}
		}

		// 7. priority promotion: runs even for tasks that weren't due
		// this pass, using their score from the last time they fired —
		// tasks with less slack drift towards the head, one position per
		// pass. Tasks skipped at steps 1-2 (self-skip, frozen) do not
		// participate.
		if t.score < lastScore {
			e.tasks.MoveForward(n)
		}

		lastScore = t.score
	}

	e.realtime = isRealtime
	e.current = nil
	return Ok
}
