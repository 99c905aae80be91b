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

package vcslib

// Each supported bus operation is a short sequence of literal 6502 bytes
// appended to the transaction queue. The byte encodings are bit-exact; the
// injected bytes are fetched and executed by a real 6502 emulation
// downstream.

// void vcsWrite5(uint8_t ZP, uint8_t data)
func (br *Bridge) vcsWrite5(zp uint8, data uint8) {
	br.queue.
		InjectROM(0xa9).
		InjectROM(data).
		InjectROM(0x85).
		InjectROM(zp).
		Yield(uint16(zp))
}

// void vcsWrite3(uint8_t ZP, uint8_t data)
//
// The stored value is not injected literally. The stuffed-byte entry
// carries the data; the final value on the bus is computed downstream from
// the stuff masks.
func (br *Bridge) vcsWrite3(zp uint8, data uint8) {
	br.queue.
		InjectROM(0x85).
		InjectROM(zp).
		StuffByte(data, uint16(zp))
}

// void vcsSta3(uint8_t ZP)
//
// The value stored arrives in the host's accumulator via a preceding
// vcsLda2().
func (br *Bridge) vcsSta3(zp uint8) {
	br.queue.
		InjectROM(0x85).
		InjectROM(zp).
		Yield(uint16(zp))
}

// void vcsLda2(uint8_t data)
func (br *Bridge) vcsLda2(data uint8) {
	br.queue.
		InjectROM(0xa9).
		InjectROM(data)
}

// void vcsJmp3()
//
// Redirects the host into cartridge space. The injected JMP changes where
// subsequent bytes must land, hence the cursor relocation.
func (br *Bridge) vcsJmp3() {
	br.queue.
		InjectROM(0x4c).
		InjectROM(uint8(ProgramOrigin & 0xff)).
		InjectROM(uint8(ProgramOrigin >> 8)).
		SetNextInjectAddress(ProgramOrigin)
}

// void vcsNop2()
func (br *Bridge) vcsNop2() {
	br.queue.InjectROM(0xea)
}

// void vcsNop2n(uint16_t n)
//
// Only one NOP byte is injected; skipping the cursor ahead reproduces the
// time cost of n/2 two-cycle NOPs without queueing n bytes.
func (br *Bridge) vcsNop2n(n uint16) {
	if n == 0 {
		return
	}

	br.queue.
		InjectROM(0xea).
		SetNextInjectAddress(br.queue.NextInjectAddress() + n - 1)
}

// void vcsCopyOverblankToRiotRam()
func (br *Bridge) vcsCopyOverblankToRiotRam() {
	for i := 0; i < len(overblank); i++ {
		br.vcsWrite5(uint8(overblankOrigin+i), overblank[i])
	}
}

// void vcsStartOverblank()
func (br *Bridge) vcsStartOverblank() {
	br.queue.
		InjectROM(0x4c).
		InjectROM(uint8(overblankOrigin)).
		InjectROM(uint8(overblankOrigin >> 8)).
		Yield(overblankOrigin)
}

// void vcsEndOverblank()
//
// The host has been idling at the end of the overblank program. A byte
// injected at the top of the mirrored cartridge space retakes control, and
// the cursor is reset to the program origin for whatever follows.
func (br *Bridge) vcsEndOverblank() {
	br.queue.
		InjectROMAt(0x00, 0x1fff).
		Yield(overblankDone).
		SetNextInjectAddress(ProgramOrigin)
}
