package frost

import (
	"github.com/TheSnowfield/frost/internal/list"
	"github.com/TheSnowfield/frost/internal/ring"
)

// Ctrl distinguishes ordinary data packets from peer-departure
// notifications in a Channel inbox.
type Ctrl int

const (
	// CtrlOk marks an ordinary data packet.
	CtrlOk Ctrl = iota
	// CtrlClose marks a peer-departure notification; From identifies the
	// departing peer.
	CtrlClose
)

// Packet is a heap-retained, reference-counted channel message. Retained
// copies are made at write time, so a caller's Packet passed to ChanWriteEx
// need not outlive the call (spec.md §4.9: "deep-copy the data bytes...the
// canonical source up to return").
type Packet struct {
	refCount int
	From     *Task
	Ctrl     Ctrl
	Data     []byte
}

func retainPacket(src *Packet, from *Task) *Packet {
	data := make([]byte, len(src.Data))
	copy(data, src.Data)
	return &Packet{
		From: from,
		Ctrl: src.Ctrl,
		Data: data,
	}
}

// Channel is a task's inbox: a fixed-capacity ring buffer of packet
// pointers. It is independent of the task's bind list (Task.chanBind) —
// mirroring the original frost_task_ctx_t.chan struct, whose ref (inbox)
// and bind (outbound list) fields are separately nullable.
type Channel struct {
	inbox *ring.RingBuffer[*Packet]
}

// ChanAllocEx allocates t's inbox. Fails with InvalidParameter if t already
// has one. Mirrors frost_chan_alloc_ex.
func (e *Engine) ChanAllocEx(t *Task) Kind {
	if t == nil {
		return InvalidParameter
	}
	if t.chanRef != nil {
		return InvalidParameter
	}
	t.chanRef = &Channel{inbox: ring.New[*Packet](e.cfg.channelCapacity)}
	e.logf("channel", LevelDebug, "channel allocated", map[string]any{"task": t.name})
	return Ok
}

// ChanAlloc is ChanAllocEx against the current task context.
func (e *Engine) ChanAlloc() Kind {
	t, ok := e.Context()
	if !ok {
		return InvalidParameter
	}
	return e.ChanAllocEx(t)
}

// ChanIsAllocatedEx reports whether t has an inbox.
func (e *Engine) ChanIsAllocatedEx(t *Task) bool {
	return t != nil && t.chanRef != nil
}

// ChanIsAllocated is ChanIsAllocatedEx against the current task context.
func (e *Engine) ChanIsAllocated() bool {
	t, ok := e.Context()
	if !ok {
		return false
	}
	return e.ChanIsAllocatedEx(t)
}

// ChanBindEx appends b to a's bind list: a can subsequently broadcast to b
// (a -> b); the reverse is not implied. The bind list holds weak references
// (identity only, resolved at write time) — it does not own b, and b need
// not have an inbox yet when the entry is created. Mirrors
// frost_chan_bind_ex.
func (e *Engine) ChanBindEx(a, b *Task) Kind {
	if a == nil || b == nil {
		return InvalidParameter
	}
	if a.chanBind == nil {
		a.chanBind = list.New[*Task]()
	}
	a.chanBind.PushBack(b)
	return Ok
}

// ChanCrossbindEx is ChanBindEx(a,b) followed by ChanBindEx(b,a), allowing
// reverse (echo) access. Mirrors frost_chan_crossbind_ex.
func (e *Engine) ChanCrossbindEx(a, b *Task) Kind {
	if kind := e.ChanBindEx(a, b); kind != Ok {
		return kind
	}
	return e.ChanBindEx(b, a)
}

// findBoundNode locates peer's entry in task's bind list.
//
// The original C helper (__chan_get_bound_node) compared the owning task
// against itself instead of the queried peer — almost certainly a bug
// (spec.md §9). This compares against peer, the correct target.
func findBoundNode(task *Task, peer *Task) *list.Node[*Task] {
	if task.chanBind == nil {
		return nil
	}
	return task.chanBind.Find(func(v *Task) bool { return v == peer })
}

// ChanWriteEx writes pack. If target is nil, pack is broadcast to every
// peer in the caller's bind list (the caller being the current task
// context); if no peer accepts it, returns Full. If target is non-nil,
// pack is written directly to target's inbox. Mirrors frost_chan_write_ex.
func (e *Engine) ChanWriteEx(target *Task, pack *Packet) Kind {
	if pack == nil {
		return InvalidParameter
	}

	writer, _ := e.Context()

	if target == nil {
		if writer == nil || writer.chanBind == nil {
			return InvalidChan
		}

		retained := retainPacket(pack, writer)

		accepted := 0
		for n := writer.chanBind.Front(); n != nil; n = n.Next() {
			peer := n.Value
			if peer.chanRef == nil {
				continue
			}
			if peer.chanRef.inbox.Put(retained) {
				accepted++
				e.logf("channel", LevelDebug, "broadcast delivered", map[string]any{"from": writer.name, "to": peer.name})
			}
		}

		if accepted == 0 {
			return Full
		}
		retained.refCount = accepted
		return Ok
	}

	if target.chanRef == nil {
		return InvalidChan
	}

	retained := retainPacket(pack, writer)
	if !target.chanRef.inbox.Put(retained) {
		return Full
	}
	retained.refCount = 1
	return Ok
}

// ChanRead pops the next packet from the current task's inbox. Returns Eof
// if the inbox is empty, InvalidChan if there is no context or no channel.
// When the popped packet is a Close control packet, the departing peer
// (pack.From) is removed from the caller's bind list — this is the
// client-side unbind on peer departure described in spec.md §4.9 (by the
// time a reader observes it, ChanUnbindEx/ChanDestroyEx has typically
// already pruned the entry; this is a defensive no-op in that case).
// Mirrors frost_chan_read.
func (e *Engine) ChanRead() (*Packet, Ctrl, Kind) {
	t, ok := e.Context()
	if !ok || t.chanRef == nil {
		return nil, CtrlOk, InvalidChan
	}

	pack, ok := t.chanRef.inbox.Read()
	if !ok {
		return nil, CtrlOk, Eof
	}

	if pack.Ctrl == CtrlClose {
		if n := findBoundNode(t, pack.From); n != nil {
			t.chanBind.Remove(n)
		}
	}

	return pack, pack.Ctrl, Ok
}

// ChanFreePack decrements pack's reference count; at zero the packet is
// released. Readers must call this for every packet they successfully
// read. Mirrors frost_chan_free_pack.
func (e *Engine) ChanFreePack(pack *Packet) Kind {
	if pack == nil {
		return InvalidParameter
	}
	pack.refCount--
	if pack.refCount <= 0 {
		pack.Data = nil
	}
	return Ok
}

// ChanUnbindEx removes the bind entries between a and b in both directions,
// a's list first then b's. For each direction, if the originator (the side
// whose bind list is searched) has the peer in its bind list and the peer
// still has an inbox, the entry is removed and a Close packet is delivered
// into the *originator's own* inbox, stamped from the departing peer —
// that's the side holding the bind entry, and therefore the side
// responsible for pruning it on the next read (see findBoundNode and
// spec.md §8's close-propagation law, confirmed against the original
// source's frost_chan_unbind_ex). Mirrors frost_chan_unbind_ex.
func (e *Engine) ChanUnbindEx(a, b *Task) Kind {
	if a == nil || b == nil {
		return InvalidParameter
	}

	if a.chanBind != nil && b.chanRef != nil {
		if n := findBoundNode(a, b); n != nil {
			a.chanBind.Remove(n)
			e.chanWriteDirect(a, &Packet{Ctrl: CtrlClose}, b)
		}
	}

	if b.chanBind != nil && a.chanRef != nil {
		if n := findBoundNode(b, a); n != nil {
			b.chanBind.Remove(n)
			e.chanWriteDirect(b, &Packet{Ctrl: CtrlClose}, a)
		}
	}

	return Ok
}

// chanWriteDirect writes pack to target's inbox, stamping from explicitly
// rather than resolving it from the current engine context — used for the
// synthetic Close notifications ChanUnbindEx/chanDestroy generate, which
// aren't written from inside the departing task's own callback.
func (e *Engine) chanWriteDirect(target *Task, pack *Packet, from *Task) Kind {
	if target.chanRef == nil {
		return InvalidChan
	}
	retained := retainPacket(pack, from)
	if !target.chanRef.inbox.Put(retained) {
		return Full
	}
	retained.refCount = 1
	return Ok
}

// ChanDestroyEx unbinds t from every other task's bind list (notifying each
// with a Close packet), drains and releases t's own inbox, and releases the
// channel record. Mirrors frost_chan_destroy_ex.
func (e *Engine) ChanDestroyEx(t *Task) Kind {
	if t == nil || t.chanRef == nil {
		return InvalidParameter
	}
	e.chanDestroy(t)
	return Ok
}

func (e *Engine) chanDestroy(t *Task) {
	var it Enumerator
	for {
		x, kind := e.Enumerate(&it)
		if kind != Ok {
			break
		}
		if x != t && e.ChanIsAllocatedEx(x) {
			e.ChanUnbindEx(x, t)
		}
	}

	if t.chanRef != nil && t.chanRef.inbox != nil {
		t.chanRef.inbox.Drain()
	}

	t.chanRef = nil
	e.logf("channel", LevelDebug, "channel destroyed", map[string]any{"task": t.name})
}
