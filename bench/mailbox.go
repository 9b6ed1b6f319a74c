package bench

import "sync/atomic"

// mailbox is the one-slot console event cell shared between the serial
// receive context (writer) and the main loop (reader). A single atomic
// word carries both the byte and the full flag, so the byte is published
// no later than the loop can observe the slot as full. An unconsumed
// byte is overwritten: latest byte wins.
type mailbox struct {
	slot atomic.Uint32
}

const slotFull = 1 << 8

func (m *mailbox) put(b byte) {
	m.slot.Store(slotFull | uint32(b))
}

func (m *mailbox) take() (byte, bool) {
	v := m.slot.Swap(0)
	if v&slotFull == 0 {
		return 0, false
	}
	return byte(v), true
}
