// This file is part of Bridge2600.
//
// Bridge2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Bridge2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Bridge2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/hardware/bus"
	"github.com/jetsetilly/bridge2600/hardware/vcslib"
)

// host is a deliberately small stand-in for the 6507 side of a real
// emulation. It consumes the transaction queue one entry at a time,
// executing just enough of the injected instruction stream (immediate
// loads, zero page stores, absolute loads) to keep the bridge's view of
// the bus honest. Everything else on the stream is treated as a fetch with
// no side effects.
type host struct {
	queue  *bus.Queue
	bridge *vcslib.Bridge

	ram [bus.Memtop + 1]uint8

	// bus cycles executed so far
	cycles int

	// interpreter state. operands accumulate until the current opcode has
	// all of them
	acc      uint8
	opcode   uint8
	operands []uint8
	needed   int
}

func newHost(queue *bus.Queue, bridge *vcslib.Bridge) *host {
	return &host{
		queue:  queue,
		bridge: bridge,
	}
}

// poke host RAM directly, bypassing the bus.
func (h *host) poke(address uint16, value uint8) {
	h.ram[address&bus.Memtop] = value
}

// step consumes one transaction from the queue.
func (h *host) step() error {
	t, ok := h.queue.Next()
	if !ok {
		return curated.Errorf("host: transaction queue is empty")
	}
	h.cycles++

	switch {
	case t.BusStuff:
		// the stuffed value wins over whatever the preceding store put on
		// the bus
		h.ram[t.Address&bus.Memtop] = t.Value
		h.bridge.UpdateBus(t.Address, t.Value)

	case t.Yield:
		h.bridge.UpdateBus(t.Address, h.ram[t.Address&bus.Memtop])

	default:
		h.feed(t.Value)
	}

	return nil
}

// drain the queue completely.
func (h *host) drain() error {
	for h.queue.Size() > 0 {
		if err := h.step(); err != nil {
			return err
		}
	}
	return nil
}

// feed one byte of the injected instruction stream to the interpreter.
func (h *host) feed(b uint8) {
	if h.needed > 0 {
		h.operands = append(h.operands, b)
		h.needed--
		if h.needed == 0 {
			h.execute()
		}
		return
	}

	switch b {
	case 0xa9, 0x85:
		h.opcode = b
		h.operands = h.operands[:0]
		h.needed = 1

	case 0xad, 0x4c:
		h.opcode = b
		h.operands = h.operands[:0]
		h.needed = 2

	default:
		// NOPs and anything unrecognised are pure fetches
	}
}

func (h *host) execute() {
	switch h.opcode {
	case 0xa9:
		h.acc = h.operands[0]

	case 0x85:
		zp := uint16(h.operands[0])
		h.ram[zp] = h.acc
		h.bridge.UpdateBus(zp, h.acc)

	case 0xad:
		address := (uint16(h.operands[0]) | uint16(h.operands[1])<<8) & bus.Memtop
		h.acc = h.ram[address]
		h.bridge.UpdateBus(address, h.acc)

	case 0x4c:
		// the jump target is where injection continues. nothing for the
		// host to do
	}
}
