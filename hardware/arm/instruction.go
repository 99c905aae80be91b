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

package arm

// Operation classifies a decoded Thumb instruction word.
type Operation int

// List of Operation values. Only the operations the bridge can synthesize
// are classified; everything else is Undefined.
const (
	Undefined Operation = iota
	BranchExchange
)

func (op Operation) String() string {
	switch op {
	case BranchExchange:
		return "BX"
	}
	return "undefined"
}

// DecodeInstructionWord classifies a 16 bit Thumb instruction word.
//
// BX is encoded as 010001110 Rm(4) 000. The word 0x4770 is BX LR, the
// return-from-stub instruction.
func DecodeInstructionWord(opcode uint16) Operation {
	if opcode&0xff87 == 0x4700 {
		return BranchExchange
	}
	return Undefined
}
