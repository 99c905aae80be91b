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

package arm_test

import (
	"testing"

	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/hardware/arm"
	"github.com/jetsetilly/bridge2600/test"
)

const (
	testOrigin = uint32(0x20000000)
	testSize   = uint32(0x1000)
)

func TestWriteWidths(t *testing.T) {
	mc := arm.NewCore(testOrigin, testSize)

	test.ExpectSuccess(t, mc.Write32(testOrigin, 0x04030201))
	test.ExpectSuccess(t, mc.Write16(testOrigin+4, 0x0605))
	test.ExpectSuccess(t, mc.Write8(testOrigin+6, 0x07))

	for i := 0; i < 7; i++ {
		v, err := mc.Read8(testOrigin + uint32(i))
		test.ExpectSuccess(t, err)
		test.Equate(t, v, i+1)
	}
}

func TestIllegalWrites(t *testing.T) {
	mc := arm.NewCore(testOrigin, testSize)

	err := mc.Write8(testOrigin-1, 0xff)
	test.ExpectSuccess(t, curated.Is(err, arm.IllegalAddress))

	err = mc.Write32(testOrigin+testSize, 0xffffffff)
	test.ExpectSuccess(t, curated.Is(err, arm.IllegalAddress))

	err = mc.Write16(testOrigin+1, 0xffff)
	test.ExpectSuccess(t, curated.Is(err, arm.IllegalAlignment))

	err = mc.Write32(testOrigin+2, 0xffffffff)
	test.ExpectSuccess(t, curated.Is(err, arm.IllegalAlignment))
}

func TestRegistersAndCycles(t *testing.T) {
	mc := arm.NewCore(testOrigin, testSize)

	mc.SetRegister(0, 0xcafe)
	mc.AdvanceCycles(10)
	mc.AdvanceCycles(5)
	test.Equate(t, mc.Register(0), 0xcafe)
	test.Equate(t, mc.Cycles(), uint64(15))

	mc.Reset()
	test.Equate(t, mc.Register(0), 0)
	test.Equate(t, mc.Cycles(), uint64(0))
}

func TestDecodeInstructionWord(t *testing.T) {
	// BX LR, the return-from-stub instruction
	test.Equate(t, arm.DecodeInstructionWord(0x4770) == arm.BranchExchange, true)

	// BX with other registers is still a branch exchange
	test.Equate(t, arm.DecodeInstructionWord(0x4700) == arm.BranchExchange, true)

	test.Equate(t, arm.DecodeInstructionWord(0x0000) == arm.Undefined, true)
	test.Equate(t, arm.DecodeInstructionWord(0xea00) == arm.Undefined, true)
}
