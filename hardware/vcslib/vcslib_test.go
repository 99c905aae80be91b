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

package vcslib_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/hardware/arm"
	"github.com/jetsetilly/bridge2600/hardware/bus"
	"github.com/jetsetilly/bridge2600/hardware/vcslib"
	"github.com/jetsetilly/bridge2600/test"
)

const (
	sramOrigin = uint32(0x20000000)
	sramSize   = uint32(0x1000)
)

// raiser records fatal messages rather than ending the session.
type raiser struct {
	messages []string
}

func (r *raiser) Raisef(pattern string, values ...interface{}) {
	r.messages = append(r.messages, fmt.Sprintf(pattern, values...))
}

func newTestBridge() (*vcslib.Bridge, *bus.Queue, *arm.Core, *raiser) {
	q := bus.NewQueue(bus.DefaultCapacity)
	mc := arm.NewCore(sramOrigin, sramSize)
	r := &raiser{}
	br := vcslib.NewBridge(q, r)
	br.Reset()
	return br, q, mc, r
}

func drain(q *bus.Queue) []bus.Transaction {
	d := make([]bus.Transaction, 0, q.Size())
	for {
		t, ok := q.Next()
		if !ok {
			return d
		}
		d = append(d, t)
	}
}

func TestReturnFromStub(t *testing.T) {
	br, _, mc, _ := newTestBridge()

	opcode, op, err := br.Fetch16(vcslib.AddrVcsNop2, mc)
	test.ExpectSuccess(t, err)
	test.Equate(t, opcode, 0x4770)
	test.Equate(t, op == arm.BranchExchange, true)
}

func TestUnmappedFetch(t *testing.T) {
	br, q, mc, _ := newTestBridge()

	_, _, err := br.Fetch16(0xdeadbeef, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.UnmappedFetch))
	test.Equate(t, err.Error(), "vcslib: unmapped fetch: 0xdeadbeef")
	test.Equate(t, q.Size(), 0)
}

func TestUnimplemented(t *testing.T) {
	br, q, mc, r := newTestBridge()

	_, _, err := br.Fetch16(vcslib.AddrMemcpy, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.Unimplemented))
	test.Equate(t, len(r.messages), 1)
	test.Equate(t, r.messages[0], "unimplemented: memcpy")
	test.Equate(t, q.Size(), 0)
}

func TestWrite5Encoding(t *testing.T) {
	br, q, mc, _ := newTestBridge()

	for zp := 0; zp <= 255; zp++ {
		for value := 0; value <= 255; value++ {
			q.Reset()
			q.SetNextInjectAddress(vcslib.ProgramOrigin)

			mc.SetRegister(0, uint32(zp))
			mc.SetRegister(1, uint32(value))
			_, _, err := br.Fetch16(vcslib.AddrVcsWrite5, mc)
			test.ExpectSuccess(t, err)

			d := drain(q)
			test.Equate(t, len(d), 5)
			test.Equate(t, d[0].Value, 0xa9)
			test.Equate(t, d[1].Value, value)
			test.Equate(t, d[2].Value, 0x85)
			test.Equate(t, d[3].Value, zp)
			test.ExpectSuccess(t, d[4].Yield)
			test.Equate(t, d[4].Address, zp)

			// injected bytes are consecutive from the injection cursor
			for i := 0; i < 4; i++ {
				test.Equate(t, d[i].Address, vcslib.ProgramOrigin+i)
			}
		}
	}
}

func TestWrite3Stuffing(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	q.SetNextInjectAddress(vcslib.ProgramOrigin)

	mc.SetRegister(0, 0x19)
	mc.SetRegister(1, 0x7e)
	_, _, err := br.Fetch16(vcslib.AddrVcsWrite3, mc)
	test.ExpectSuccess(t, err)

	d := drain(q)
	test.Equate(t, len(d), 3)
	test.Equate(t, d[0].Value, 0x85)
	test.Equate(t, d[1].Value, 0x19)
	test.ExpectSuccess(t, d[2].BusStuff)
	test.Equate(t, d[2].Value, 0x7e)
	test.Equate(t, d[2].Address, 0x19)
}

func TestSta3(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	q.SetNextInjectAddress(vcslib.ProgramOrigin)

	mc.SetRegister(0, 0x2c)
	_, _, err := br.Fetch16(vcslib.AddrVcsSta3, mc)
	test.ExpectSuccess(t, err)

	d := drain(q)
	test.Equate(t, len(d), 3)
	test.Equate(t, d[0].Value, 0x85)
	test.Equate(t, d[1].Value, 0x2c)
	test.ExpectSuccess(t, d[2].Yield)
	test.Equate(t, d[2].Address, 0x2c)
}

func TestLdaForBusStuff(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	br.SetStuffMasks(0x12, 0x34, 0x56)

	for _, c := range []struct {
		address uint32
		mask    int
	}{
		{vcslib.AddrVcsLdaForBusStuff2, 0x12},
		{vcslib.AddrVcsLdxForBusStuff2, 0x34},
		{vcslib.AddrVcsLdyForBusStuff2, 0x56},
	} {
		q.Reset()
		_, _, err := br.Fetch16(c.address, mc)
		test.ExpectSuccess(t, err)

		d := drain(q)
		test.Equate(t, len(d), 2)
		test.Equate(t, d[0].Value, 0xa9)
		test.Equate(t, d[1].Value, c.mask)
	}
}

func TestJmp3(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	q.SetNextInjectAddress(0x1800)

	_, _, err := br.Fetch16(vcslib.AddrVcsJmp3, mc)
	test.ExpectSuccess(t, err)

	d := drain(q)
	test.Equate(t, len(d), 3)
	test.Equate(t, d[0].Value, 0x4c)
	test.Equate(t, d[1].Value, 0x00)
	test.Equate(t, d[2].Value, 0x10)
	test.Equate(t, q.NextInjectAddress(), vcslib.ProgramOrigin)
}

func TestNop2n(t *testing.T) {
	br, q, mc, _ := newTestBridge()

	// n == 0 injects nothing and leaves the cursor unchanged
	q.SetNextInjectAddress(vcslib.ProgramOrigin)
	mc.SetRegister(0, 0)
	_, _, err := br.Fetch16(vcslib.AddrVcsNop2n, mc)
	test.ExpectSuccess(t, err)
	test.Equate(t, q.Size(), 0)
	test.Equate(t, q.NextInjectAddress(), vcslib.ProgramOrigin)

	// n > 0 injects exactly one byte and advances the cursor by n
	for _, n := range []int{1, 2, 7, 100} {
		q.Reset()
		q.SetNextInjectAddress(vcslib.ProgramOrigin)
		mc.SetRegister(0, uint32(n))
		_, _, err := br.Fetch16(vcslib.AddrVcsNop2n, mc)
		test.ExpectSuccess(t, err)

		d := drain(q)
		test.Equate(t, len(d), 1)
		test.Equate(t, d[0].Value, 0xea)
		test.Equate(t, q.NextInjectAddress(), vcslib.ProgramOrigin+n)
	}
}

func TestOverblankSequences(t *testing.T) {
	br, q, mc, _ := newTestBridge()

	// start: a JMP to the base of the program and a yield there
	q.SetNextInjectAddress(vcslib.ProgramOrigin)
	_, _, err := br.Fetch16(vcslib.AddrVcsStartOverblank, mc)
	test.ExpectSuccess(t, err)
	d := drain(q)
	test.Equate(t, len(d), 4)
	test.Equate(t, d[0].Value, 0x4c)
	test.Equate(t, d[1].Value, 0x80)
	test.Equate(t, d[2].Value, 0x00)
	test.ExpectSuccess(t, d[3].Yield)
	test.Equate(t, d[3].Address, 0x0080)

	// end: a single byte at the top of cartridge space, a yield at the end
	// of the overblank program, cursor reset to the program origin
	q.Reset()
	_, _, err = br.Fetch16(vcslib.AddrVcsEndOverblank, mc)
	test.ExpectSuccess(t, err)
	d = drain(q)
	test.Equate(t, len(d), 2)
	test.Equate(t, d[0].Address, 0x1fff)
	test.Equate(t, d[0].Value, 0x00)
	test.ExpectSuccess(t, d[1].Yield)
	test.Equate(t, d[1].Address, 0x00ac)
	test.Equate(t, q.NextInjectAddress(), vcslib.ProgramOrigin)

	// copy: a vcsWrite5 for every program byte, at ascending RIOT RAM
	// offsets from 0x80
	q.Reset()
	q.SetNextInjectAddress(vcslib.ProgramOrigin)
	_, _, err = br.Fetch16(vcslib.AddrVcsCopyOverblankToRiotRam, mc)
	test.ExpectSuccess(t, err)
	d = drain(q)
	test.Equate(t, len(d)%5, 0)
	for i := 0; i*5 < len(d); i++ {
		g := d[i*5 : i*5+5]
		test.Equate(t, g[0].Value, 0xa9)
		test.Equate(t, g[2].Value, 0x85)
		test.Equate(t, g[3].Value, 0x80+i)
		test.ExpectSuccess(t, g[4].Yield)
		test.Equate(t, g[4].Address, 0x80+i)
	}
}

func TestReadHandshake(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	q.SetNextInjectAddress(vcslib.ProgramOrigin)

	const readAddress = 0x0281

	// first call enqueues the absolute load and stalls
	mc.SetRegister(0, readAddress)
	_, _, err := br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))

	test.Equate(t, q.Size(), 4)

	// second call while the queue is still pending stalls again with no
	// register mutation
	mc.SetRegister(0, 0xffffffff)
	_, _, err = br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))
	test.Equate(t, mc.Register(0), 0xffffffff)

	// drain the queue, checking the encoding on the way past
	d := drain(q)
	test.Equate(t, len(d), 4)
	test.Equate(t, d[0].Value, 0xad)
	test.Equate(t, d[1].Value, 0x81)
	test.Equate(t, d[2].Value, 0x02)
	test.ExpectSuccess(t, d[3].Yield)
	test.Equate(t, d[3].Address, readAddress)

	// an unrelated bus cycle is not good enough
	br.UpdateBus(0x0280, 0xee)
	_, _, err = br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))
	test.Equate(t, mc.Register(0), 0xffffffff)

	// the matching cycle delivers the value to register 0
	br.UpdateBus(readAddress, 0x3f)
	opcode, op, err := br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, err)
	test.Equate(t, opcode, 0x4770)
	test.Equate(t, op == arm.BranchExchange, true)
	test.Equate(t, mc.Register(0), 0x3f)

	// the handshake is back at idle: a new call starts a new read
	mc.SetRegister(0, readAddress)
	_, _, err = br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))
	test.Equate(t, q.Size(), 4)
}

func TestBackpressure(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	q.SetNextInjectAddress(vcslib.ProgramOrigin)

	// fill the queue to the limit with individual NOP dispatches
	for i := 0; i < vcslib.QueueSizeLimit; i++ {
		_, _, err := br.Fetch16(vcslib.AddrVcsNop2, mc)
		test.ExpectSuccess(t, err)
	}
	test.Equate(t, q.Size(), vcslib.QueueSizeLimit)

	// every operation now stalls without touching the queue
	cursor := q.NextInjectAddress()
	mc.SetRegister(0, 0x80)
	mc.SetRegister(1, 0x01)
	for _, address := range []uint32{
		vcslib.AddrVcsNop2, vcslib.AddrVcsWrite5, vcslib.AddrVcsRead4, vcslib.AddrMemset,
	} {
		_, _, err := br.Fetch16(address, mc)
		test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))
		test.Equate(t, q.Size(), vcslib.QueueSizeLimit)
		test.Equate(t, q.NextInjectAddress(), cursor)
	}
}

func TestTimestampRefresh(t *testing.T) {
	br, q, mc, _ := newTestBridge()

	mc.AdvanceCycles(1234)
	_, _, err := br.Fetch16(vcslib.AddrVcsNop2, mc)
	test.ExpectSuccess(t, err)

	mc.AdvanceCycles(766)
	_, _, err = br.Fetch16(vcslib.AddrVcsNop2, mc)
	test.ExpectSuccess(t, err)

	d := drain(q)
	test.Equate(t, d[0].Timestamp, uint64(1234))
	test.Equate(t, d[1].Timestamp, uint64(2000))
}

func TestReset(t *testing.T) {
	br, q, mc, _ := newTestBridge()
	q.SetNextInjectAddress(vcslib.ProgramOrigin)

	br.SetStuffMasks(0xaa, 0xbb, 0xcc)
	mc.SetRegister(0, 0x0080)
	_, _, _ = br.Fetch16(vcslib.AddrVcsRead4, mc)
	br.UpdateBus(0x0080, 0x99)

	br.Reset()
	q.Reset()

	a, x, y := br.StuffMasks()
	test.Equate(t, a, 0)
	test.Equate(t, x, 0)
	test.Equate(t, y, 0)

	// the pending read is gone: a read call takes the first-phase path and
	// enqueues a fresh load, even though the old bus snapshot matched
	mc.SetRegister(0, 0x0080)
	_, _, err := br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))
	test.Equate(t, q.Size(), 4)

	// the bus snapshot was zeroed: with the queue drained, a read of
	// address zero completes against the zeroed snapshot
	br.Reset()
	q.Reset()
	mc.SetRegister(0, 0x0000)
	_, _, err = br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, curated.Is(err, vcslib.StopExecution))
	drain(q)
	mc.SetRegister(0, 0xffffffff)
	_, _, err = br.Fetch16(vcslib.AddrVcsRead4, mc)
	test.ExpectSuccess(t, err)
	test.Equate(t, mc.Register(0), 0)
}

func TestFillMatchesNaive(t *testing.T) {
	br, _, mc, _ := newTestBridge()

	const fillValue = 0xa5

	for align := uint32(0); align <= 3; align++ {
		for size := uint32(0); size <= 64; size++ {
			mc.Reset()
			target := sramOrigin + 0x0100 + align

			mc.SetRegister(0, target)
			mc.SetRegister(1, fillValue)
			mc.SetRegister(3, size)
			_, _, err := br.Fetch16(vcslib.AddrMemset, mc)
			test.ExpectSuccess(t, err)

			// byte-for-byte identical to a naive one-byte-at-a-time fill,
			// with the bytes either side untouched
			v, _ := mc.Read8(target - 1)
			test.Equate(t, v, 0)
			for i := uint32(0); i < size; i++ {
				v, err := mc.Read8(target + i)
				test.ExpectSuccess(t, err)
				test.Equate(t, v, fillValue)
			}
			v, _ = mc.Read8(target + size)
			test.Equate(t, v, 0)
		}
	}
}

func TestFillPropagatesWriteFault(t *testing.T) {
	br, _, mc, _ := newTestBridge()

	// a fill that runs off the end of SRAM fails with the core's own
	// error, unwrapped
	mc.SetRegister(0, sramOrigin+sramSize-8)
	mc.SetRegister(1, 0xff)
	mc.SetRegister(3, 64)
	_, _, err := br.Fetch16(vcslib.AddrMemset, mc)
	test.ExpectSuccess(t, curated.Is(err, arm.IllegalAddress))

	// the bytes before the fault were written
	v, _ := mc.Read8(sramOrigin + sramSize - 8)
	test.Equate(t, v, 0xff)
}
