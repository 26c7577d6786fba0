package frost

// TLSAllocEx allocates t's task-local storage table, sized per the owning
// engine's WithTLSSize option (default 8). A no-op if already allocated.
// Mirrors frost_tls_alloc_ex.
func (e *Engine) TLSAllocEx(t *Task) Kind {
	if t == nil {
		return InvalidParameter
	}
	if t.tlsAllocated {
		return Ok
	}
	t.tls = make([]any, e.cfg.tlsSize)
	t.tlsAllocated = true
	e.logf("tls", LevelDebug, "tls allocated", map[string]any{"task": t.name})
	return Ok
}

// TLSAlloc is TLSAllocEx against the current task context.
func (e *Engine) TLSAlloc() Kind {
	t, ok := e.Context()
	if !ok {
		return InvalidParameter
	}
	return e.TLSAllocEx(t)
}

// TLSDestroyEx releases t's TLS table. A no-op if none is allocated.
// Mirrors frost_tls_destroy_ex.
func (e *Engine) TLSDestroyEx(t *Task) Kind {
	if t == nil {
		return InvalidParameter
	}
	if !t.tlsAllocated {
		return Ok
	}
	t.tls = nil
	t.tlsAllocated = false
	return Ok
}

// TLSDestroy is TLSDestroyEx against the current task context.
func (e *Engine) TLSDestroy() Kind {
	t, ok := e.Context()
	if !ok {
		return InvalidParameter
	}
	return e.TLSDestroyEx(t)
}

// TLSIsAllocatedEx reports whether t has a TLS table.
func (e *Engine) TLSIsAllocatedEx(t *Task) bool {
	return t != nil && t.tlsAllocated
}

// TLSIsAllocated is TLSIsAllocatedEx against the current task context.
func (e *Engine) TLSIsAllocated() bool {
	t, ok := e.Context()
	if !ok {
		return false
	}
	return e.TLSIsAllocatedEx(t)
}

// TLSSetValueEx stores value at index in t's TLS table. Returns
// InvalidParameter if t has no TLS table or index is out of range.
// Mirrors frost_tls_set_value_ex.
func (e *Engine) TLSSetValueEx(t *Task, index int, value any) Kind {
	if t == nil || !t.tlsAllocated || index < 0 || index >= len(t.tls) {
		return InvalidParameter
	}
	t.tls[index] = value
	return Ok
}

// TLSSetValue is TLSSetValueEx against the current task context.
func (e *Engine) TLSSetValue(index int, value any) Kind {
	t, ok := e.Context()
	if !ok {
		return InvalidParameter
	}
	return e.TLSSetValueEx(t, index, value)
}

// TLSGetValueEx reads the value at index from t's TLS table. Mirrors
// frost_tls_get_value_ex.
func (e *Engine) TLSGetValueEx(t *Task, index int) (any, Kind) {
	if t == nil || !t.tlsAllocated || index < 0 || index >= len(t.tls) {
		return nil, InvalidParameter
	}
	return t.tls[index], Ok
}

// TLSGetValue is TLSGetValueEx against the current task context.
func (e *Engine) TLSGetValue(index int) (any, Kind) {
	t, ok := e.Context()
	if !ok {
		return nil, InvalidParameter
	}
	return e.TLSGetValueEx(t, index)
}
