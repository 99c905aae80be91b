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
	"testing"

	"github.com/jetsetilly/bridge2600/hardware/vcslib"
	"github.com/jetsetilly/bridge2600/test"
)

func TestHostWrite(t *testing.T) {
	s := newSession()

	s.core.SetRegister(0, 0x19)
	s.core.SetRegister(1, 0x7e)
	err := s.call(vcslib.AddrVcsWrite5)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, s.host.drain())

	test.Equate(t, s.host.ram[0x19], 0x7e)
}

func TestHostReadHandshake(t *testing.T) {
	s := newSession()

	s.host.poke(0x00f0, 0x5a)
	s.core.SetRegister(0, 0x00f0)
	err := s.call(vcslib.AddrVcsRead4)
	test.ExpectSuccess(t, err)

	test.Equate(t, s.core.Register(0), 0x5a)
}

func TestHostOverblank(t *testing.T) {
	s := newSession()

	// the copy is larger than the backpressure limit so the subsequent
	// calls exercise the stall path too
	err := s.call(vcslib.AddrVcsCopyOverblankToRiotRam)
	test.ExpectSuccess(t, err)
	err = s.call(vcslib.AddrVcsStartOverblank)
	test.ExpectSuccess(t, err)
	err = s.call(vcslib.AddrVcsEndOverblank)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, s.host.drain())

	// the program begins with lda #$82 / sta VBLANK
	test.Equate(t, s.host.ram[0x80], 0xa9)
	test.Equate(t, s.host.ram[0x81], 0x82)
	test.Equate(t, s.host.ram[0x82], 0x85)
	test.Equate(t, s.host.ram[0x83], 0x01)

	test.ExpectFailure(t, s.host.step())
}

func TestHostFill(t *testing.T) {
	s := newSession()

	s.core.SetRegister(0, sramOrigin+0x10)
	s.core.SetRegister(1, 0xe7)
	s.core.SetRegister(3, 0x20)
	err := s.call(vcslib.AddrMemset)
	test.ExpectSuccess(t, err)

	for i := uint32(0); i < 0x20; i++ {
		v, err := s.core.Read8(sramOrigin + 0x10 + i)
		test.ExpectSuccess(t, err)
		test.Equate(t, v, 0xe7)
	}
}
