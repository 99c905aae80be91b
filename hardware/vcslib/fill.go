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

// fillMemory is the memset analogue. The fill pattern goes directly into
// ARM-addressable memory, not onto the bus. The widest aligned write is
// used at every position: 32 bits when the pointer is 4-byte aligned and at
// least 4 bytes remain, 16 bits when 2-byte aligned with at least 2 bytes
// remaining, single bytes otherwise.
//
// A write failure aborts the fill immediately and the error propagates
// unchanged. Bytes already written stay written.
func fillMemory(mc Core, target uint32, value uint8, size uint32) error {
	value16 := uint16(value) | uint16(value)<<8
	value32 := uint32(value16) | uint32(value16)<<16

	ptr := target
	for ptr < target+size {
		remaining := size - (ptr - target)

		var err error
		switch {
		case ptr&0x03 == 0 && remaining >= 4:
			err = mc.Write32(ptr, value32)
			ptr += 4
		case ptr&0x01 == 0 && remaining >= 2:
			err = mc.Write16(ptr, value16)
			ptr += 2
		default:
			err = mc.Write8(ptr, value)
			ptr++
		}

		if err != nil {
			return err
		}
	}

	return nil
}
