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

// Package arm provides the ARM-side collaborator consumed by the vcslib
// bridge: a register file, a cycle counter and fallible memory writes
// against a mapped SRAM block. It is not an instruction decoder or executor
// beyond classification of the single instruction word the bridge
// synthesizes.
package arm

import (
	"github.com/jetsetilly/bridge2600/curated"
)

// NumRegisters in the ARM register file.
const NumRegisters = 16

// register indices with architectural meaning.
const (
	SP = 13
	LR = 14
	PC = 15
)

// error patterns for illegal memory access.
const (
	IllegalAddress   = "arm: %d bit write to unmapped address %#08x"
	IllegalAlignment = "arm: misaligned %d bit write to address %#08x"
)

// Core is a minimal Cortex-M0 model: registers, cycles and SRAM. The
// instruction pipeline itself belongs to an external emulator.
type Core struct {
	registers [NumRegisters]uint32
	cycles    uint64

	sram       []byte
	sramOrigin uint32
	sramMemtop uint32
}

// NewCore is the preferred method of initialisation of the Core type. The
// SRAM block is placed at origin and is size bytes long.
func NewCore(origin uint32, size uint32) *Core {
	return &Core{
		sram:       make([]byte, size),
		sramOrigin: origin,
		sramMemtop: origin + size - 1,
	}
}

// Reset zeroes the register file, the cycle counter and SRAM.
func (mc *Core) Reset() {
	mc.registers = [NumRegisters]uint32{}
	mc.cycles = 0
	for i := range mc.sram {
		mc.sram[i] = 0
	}
}

// Register returns the value of the numbered register.
func (mc *Core) Register(reg int) uint32 {
	return mc.registers[reg]
}

// SetRegister writes the value of the numbered register.
func (mc *Core) SetRegister(reg int, val uint32) {
	mc.registers[reg] = val
}

// Cycles returns the current cycle count.
func (mc *Core) Cycles() uint64 {
	return mc.cycles
}

// AdvanceCycles moves the cycle counter forward. Called by whatever is
// stepping the core.
func (mc *Core) AdvanceCycles(n uint64) {
	mc.cycles += n
}

// mapAddress returns the SRAM offset for an address, checking that length
// bytes are in range.
func (mc *Core) mapAddress(addr uint32, length uint32) (uint32, bool) {
	if addr < mc.sramOrigin || addr+length-1 > mc.sramMemtop {
		return 0, false
	}
	return addr - mc.sramOrigin, true
}

// Write8 writes a byte to the mapped address.
func (mc *Core) Write8(addr uint32, val uint8) error {
	idx, ok := mc.mapAddress(addr, 1)
	if !ok {
		return curated.Errorf(IllegalAddress, 8, addr)
	}
	mc.sram[idx] = val
	return nil
}

// Write16 writes a 16 bit value, little-endian, to the mapped address.
func (mc *Core) Write16(addr uint32, val uint16) error {
	if addr&0x01 != 0 {
		return curated.Errorf(IllegalAlignment, 16, addr)
	}
	idx, ok := mc.mapAddress(addr, 2)
	if !ok {
		return curated.Errorf(IllegalAddress, 16, addr)
	}
	mc.sram[idx] = uint8(val)
	mc.sram[idx+1] = uint8(val >> 8)
	return nil
}

// Write32 writes a 32 bit value, little-endian, to the mapped address.
func (mc *Core) Write32(addr uint32, val uint32) error {
	if addr&0x03 != 0 {
		return curated.Errorf(IllegalAlignment, 32, addr)
	}
	idx, ok := mc.mapAddress(addr, 4)
	if !ok {
		return curated.Errorf(IllegalAddress, 32, addr)
	}
	mc.sram[idx] = uint8(val)
	mc.sram[idx+1] = uint8(val >> 8)
	mc.sram[idx+2] = uint8(val >> 16)
	mc.sram[idx+3] = uint8(val >> 24)
	return nil
}

// Read8 reads a byte from the mapped address.
func (mc *Core) Read8(addr uint32) (uint8, error) {
	idx, ok := mc.mapAddress(addr, 1)
	if !ok {
		return 0, curated.Errorf(IllegalAddress, 8, addr)
	}
	return mc.sram[idx], nil
}
