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

// Package vcslib implements the call bridge between an emulated ARM core
// and the 6507 side of the VCS. ARM programs call the bus operations of the
// cartridge firmware by branching to fixed stub addresses; the bridge
// intercepts the fetch at those addresses and translates each call into bus
// transactions, direct register mutation or ARM memory writes.
//
// The bridge is invoked synchronously, once per intercepted fetch, by
// whatever is stepping the ARM core. It never blocks. Where an operation
// cannot complete until the host bus has made progress the bridge returns
// the StopExecution error, telling the scheduler to pause the ARM for the
// current step and retry the same fetch later.
package vcslib

import (
	"fmt"

	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/hardware/arm"
	"github.com/jetsetilly/bridge2600/hardware/bus"
)

// Core is the view of the ARM processor required by the bridge.
type Core interface {
	Register(reg int) uint32
	SetRegister(reg int, val uint32)
	Cycles() uint64
	Write8(addr uint32, val uint8) error
	Write16(addr uint32, val uint16) error
	Write32(addr uint32, val uint32) error
}

// Fatal is how the bridge reports conditions the emulation session cannot
// continue from. Raisef() is expected not to return; implementations
// normally panic or end the process. The error returned alongside any
// Raisef() call is a backstop for implementations that do return.
type Fatal interface {
	Raisef(pattern string, values ...interface{})
}

// Error patterns returned by Fetch16().
//
// StopExecution is a control signal, not a fault. It means the ARM core
// must pause for the current scheduling step and retry the same fetch once
// the host bus has advanced. It must never be logged or shown to a user.
const (
	StopExecution = "vcslib: stop execution"
	UnmappedFetch = "vcslib: unmapped fetch: %#08x"
	Unimplemented = "vcslib: unimplemented: %s"
)

// Bridge translates intercepted ARM fetches into bus transactions. One
// Bridge serves one emulation session; all of its state is private to the
// session and is restored to the idle baseline by Reset().
type Bridge struct {
	queue *bus.Queue
	fatal Fatal

	// per-register masks for bus-stuffing writes
	stuffMaskA uint8
	stuffMaskX uint8
	stuffMaskY uint8

	// the two-phase read handshake. at most one read is outstanding
	isWaitingForRead      bool
	waitingForReadAddress uint16

	// snapshot of the most recently completed bus cycle, delivered through
	// UpdateBus()
	currentAddress uint16
	currentValue   uint8
}

// NewBridge is the preferred method of initialisation of the Bridge type.
// The bridge is bound to the queue and the fatal reporter for its lifetime.
func NewBridge(queue *bus.Queue, fatal Fatal) *Bridge {
	return &Bridge{
		queue: queue,
		fatal: fatal,
	}
}

// Reset returns the bridge to its idle baseline: stuff masks zeroed, no
// pending read, bus snapshot zeroed.
func (br *Bridge) Reset() {
	br.stuffMaskA = 0x00
	br.stuffMaskX = 0x00
	br.stuffMaskY = 0x00
	br.isWaitingForRead = false
	br.waitingForReadAddress = 0
	br.currentAddress = 0
	br.currentValue = 0
}

// UpdateBus tells the bridge about the most recently completed bus cycle.
// Called by the host-side engine; the bridge never polls the bus itself.
func (br *Bridge) UpdateBus(address uint16, value uint8) {
	br.currentAddress = address
	br.currentValue = value
}

// SetStuffMasks sets the per-register masks used by bus-stuffing writes.
func (br *Bridge) SetStuffMasks(a, x, y uint8) {
	br.stuffMaskA = a
	br.stuffMaskX = x
	br.stuffMaskY = y
}

// StuffMasks returns the per-register bus-stuffing masks.
func (br *Bridge) StuffMasks() (a, x, y uint8) {
	return br.stuffMaskA, br.stuffMaskX, br.stuffMaskY
}

func (br *Bridge) String() string {
	s := fmt.Sprintf("masks: a=%02x x=%02x y=%02x", br.stuffMaskA, br.stuffMaskX, br.stuffMaskY)
	if br.isWaitingForRead {
		s += fmt.Sprintf("\nawaiting read of %#04x", br.waitingForReadAddress)
	}
	s += fmt.Sprintf("\nlast bus cycle: %#04x = %02x", br.currentAddress, br.currentValue)
	return s
}

// Fetch16 dispatches an intercepted ARM fetch. The address selects the
// operation; arguments are read from the register file of the supplied
// core.
//
// On success the returned instruction word and its decoded form are the
// synthesized return-to-caller instruction: execution resumes at the
// caller, whichever stub ran. Errors are either the StopExecution control
// signal, an UnmappedFetch for addresses outside the stub table, or a
// memory fault propagated unchanged from the core.
func (br *Bridge) Fetch16(address uint32, mc Core) (uint16, arm.Operation, error) {
	// backpressure. no enqueue of any kind happens past this point until
	// the queue has drained below the limit
	if br.queue.Size() >= QueueSizeLimit {
		return 0, arm.Undefined, curated.Errorf(StopExecution)
	}

	// the single synchronization point between ARM progress and bus-side
	// event ordering. everything enqueued in this dispatch is stamped with
	// the cycle count observed now
	br.queue.SetTimestamp(mc.Cycles())

	switch address {
	case AddrMemset:
		// byte count is in register 3
		if err := fillMemory(mc, mc.Register(0), uint8(mc.Register(1)), mc.Register(3)); err != nil {
			return 0, arm.Undefined, err
		}
		return returnFromStub()

	case AddrMemcpy:
		return br.unimplemented("memcpy")

	case AddrVcsLdaForBusStuff2:
		br.vcsLda2(br.stuffMaskA)
		return returnFromStub()

	case AddrVcsLdxForBusStuff2:
		br.vcsLda2(br.stuffMaskX)
		return returnFromStub()

	case AddrVcsLdyForBusStuff2:
		br.vcsLda2(br.stuffMaskY)
		return returnFromStub()

	case AddrVcsWrite3:
		br.vcsWrite3(uint8(mc.Register(0)), uint8(mc.Register(1)))
		return returnFromStub()

	case AddrVcsJmp3:
		br.vcsJmp3()
		return returnFromStub()

	case AddrVcsNop2:
		br.vcsNop2()
		return returnFromStub()

	case AddrVcsNop2n:
		br.vcsNop2n(uint16(mc.Register(0)))
		return returnFromStub()

	case AddrVcsWrite5:
		br.vcsWrite5(uint8(mc.Register(0)), uint8(mc.Register(1)))
		return returnFromStub()

	case AddrVcsWrite6:
		return br.unimplemented("vcsWrite6")

	case AddrVcsLda2:
		br.vcsLda2(uint8(mc.Register(0)))
		return returnFromStub()

	case AddrVcsLdx2:
		return br.unimplemented("vcsLdx2")

	case AddrVcsLdy2:
		return br.unimplemented("vcsLdy2")

	case AddrVcsSax3:
		return br.unimplemented("vcsSax3")

	case AddrVcsSta3:
		br.vcsSta3(uint8(mc.Register(0)))
		return returnFromStub()

	case AddrVcsStx3:
		return br.unimplemented("vcsStx3")

	case AddrVcsSty3:
		return br.unimplemented("vcsSty3")

	case AddrVcsSta4:
		return br.unimplemented("vcsSta4")

	case AddrVcsStx4:
		return br.unimplemented("vcsStx4")

	case AddrVcsSty4:
		return br.unimplemented("vcsSty4")

	case AddrVcsCopyOverblankToRiotRam:
		br.vcsCopyOverblankToRiotRam()
		return returnFromStub()

	case AddrVcsStartOverblank:
		br.vcsStartOverblank()
		return returnFromStub()

	case AddrVcsEndOverblank:
		br.vcsEndOverblank()
		return returnFromStub()

	case AddrVcsRead4:
		return br.vcsRead4(mc)

	case AddrRandint:
		return br.unimplemented("randint")

	case AddrVcsTxs2:
		return br.unimplemented("vcsTxs2")

	case AddrVcsJsr6:
		return br.unimplemented("vcsJsr6")

	case AddrVcsPha3:
		return br.unimplemented("vcsPha3")

	case AddrVcsPhp3:
		return br.unimplemented("vcsPhp3")

	case AddrVcsPla4:
		return br.unimplemented("vcsPla4")

	case AddrVcsPlp4:
		return br.unimplemented("vcsPlp4")

	case AddrVcsPla4Ex:
		return br.unimplemented("vcsPla4Ex")

	case AddrVcsPlp4Ex:
		return br.unimplemented("vcsPlp4Ex")

	case AddrVcsJmpToRam3:
		return br.unimplemented("vcsJmpToRam3")

	case AddrVcsWaitForAddress:
		return br.unimplemented("vcsWaitForAddress")

	case AddrInjectDmaData:
		return br.unimplemented("vcsInjectDmaData")
	}

	return 0, arm.Undefined, curated.Errorf(UnmappedFetch, address)
}

// uint8_t vcsRead4(uint16_t address)
//
// The two-phase read handshake. The first call enqueues an absolute load of
// the requested address and stalls the ARM; the value cannot exist until
// the host bus has actually executed the load. Subsequent calls stall again
// until the queue has drained and the last completed bus cycle is the one
// we asked for; only then is the value delivered to register 0.
func (br *Bridge) vcsRead4(mc Core) (uint16, arm.Operation, error) {
	if br.isWaitingForRead {
		// a non-empty queue, or a bus snapshot for some other address,
		// means we would be reading a stale or unrelated cycle
		if br.queue.Size() > 0 || br.currentAddress != br.waitingForReadAddress {
			return 0, arm.Undefined, curated.Errorf(StopExecution)
		}

		br.isWaitingForRead = false
		mc.SetRegister(0, uint32(br.currentValue))

		return returnFromStub()
	}

	address := uint16(mc.Register(0)) & bus.Memtop

	br.isWaitingForRead = true
	br.waitingForReadAddress = address

	br.queue.
		InjectROM(0xad).
		InjectROM(uint8(address)).
		InjectROM(uint8(address >> 8)).
		Yield(address)

	return 0, arm.Undefined, curated.Errorf(StopExecution)
}

// unimplemented reports a stub that is recognised but not supported. A
// silent no-op here would corrupt the emulated program invisibly, so this
// is always fatal to the session.
func (br *Bridge) unimplemented(name string) (uint16, arm.Operation, error) {
	br.fatal.Raisef("unimplemented: %s", name)
	return 0, arm.Undefined, curated.Errorf(Unimplemented, name)
}

// every stub that doesn't stall and doesn't fail concludes with the same
// synthesized instruction: BX LR, returning the ARM to the caller. no stub
// needs to track its own return address.
const returnFromStubOpcode = 0x4770

func returnFromStub() (uint16, arm.Operation, error) {
	return returnFromStubOpcode, arm.DecodeInstructionWord(returnFromStubOpcode), nil
}
