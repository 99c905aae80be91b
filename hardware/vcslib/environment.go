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

// QueueSizeLimit is the backpressure threshold on the transaction queue. A
// stub call arriving while the queue holds this many pending transactions
// stalls with StopExecution. Note that a single dispatch can push the queue
// well past this limit; the limit only gates new dispatches.
const QueueSizeLimit = 16

// ProgramOrigin is the start of cartridge ROM as seen by the 6507. Injected
// JMPs that redirect the host back into cartridge space land here.
const ProgramOrigin = 0x1000

// The ABI table. Every stub has a fixed address in ARM address space; a
// branch to one of these addresses is intercepted by the bridge instead of
// being decoded as ARM code. Arguments arrive in registers, starting at
// register 0, and a return value (if any) leaves in register 0.
//
// These addresses are a compatibility contract with compiled ARM binaries.
// Do not renumber.
const (
	AddrMemset = 0x10000000 + 4*iota
	AddrMemcpy
	AddrVcsLdaForBusStuff2
	AddrVcsLdxForBusStuff2
	AddrVcsLdyForBusStuff2
	AddrVcsWrite3
	AddrVcsJmp3
	AddrVcsNop2
	AddrVcsNop2n
	AddrVcsWrite5
	AddrVcsWrite6
	AddrVcsLda2
	AddrVcsLdx2
	AddrVcsLdy2
	AddrVcsSax3
	AddrVcsSta3
	AddrVcsStx3
	AddrVcsSty3
	AddrVcsSta4
	AddrVcsStx4
	AddrVcsSty4
	AddrVcsCopyOverblankToRiotRam
	AddrVcsStartOverblank
	AddrVcsEndOverblank
	AddrVcsRead4
	AddrRandint
	AddrVcsTxs2
	AddrVcsJsr6
	AddrVcsPha3
	AddrVcsPhp3
	AddrVcsPla4
	AddrVcsPlp4
	AddrVcsPla4Ex
	AddrVcsPlp4Ex
	AddrVcsJmpToRam3
	AddrVcsWaitForAddress
	AddrInjectDmaData
)

// Stubs returns the ABI table as a name to address mapping. Used by the
// monitor for call-by-name and by anything that wants to enumerate the
// table.
func Stubs() map[string]uint32 {
	return map[string]uint32{
		"memset":                    AddrMemset,
		"memcpy":                    AddrMemcpy,
		"vcsLdaForBusStuff2":        AddrVcsLdaForBusStuff2,
		"vcsLdxForBusStuff2":        AddrVcsLdxForBusStuff2,
		"vcsLdyForBusStuff2":        AddrVcsLdyForBusStuff2,
		"vcsWrite3":                 AddrVcsWrite3,
		"vcsJmp3":                   AddrVcsJmp3,
		"vcsNop2":                   AddrVcsNop2,
		"vcsNop2n":                  AddrVcsNop2n,
		"vcsWrite5":                 AddrVcsWrite5,
		"vcsWrite6":                 AddrVcsWrite6,
		"vcsLda2":                   AddrVcsLda2,
		"vcsLdx2":                   AddrVcsLdx2,
		"vcsLdy2":                   AddrVcsLdy2,
		"vcsSax3":                   AddrVcsSax3,
		"vcsSta3":                   AddrVcsSta3,
		"vcsStx3":                   AddrVcsStx3,
		"vcsSty3":                   AddrVcsSty3,
		"vcsSta4":                   AddrVcsSta4,
		"vcsStx4":                   AddrVcsStx4,
		"vcsSty4":                   AddrVcsSty4,
		"vcsCopyOverblankToRiotRam": AddrVcsCopyOverblankToRiotRam,
		"vcsStartOverblank":         AddrVcsStartOverblank,
		"vcsEndOverblank":           AddrVcsEndOverblank,
		"vcsRead4":                  AddrVcsRead4,
		"randint":                   AddrRandint,
		"vcsTxs2":                   AddrVcsTxs2,
		"vcsJsr6":                   AddrVcsJsr6,
		"vcsPha3":                   AddrVcsPha3,
		"vcsPhp3":                   AddrVcsPhp3,
		"vcsPla4":                   AddrVcsPla4,
		"vcsPlp4":                   AddrVcsPlp4,
		"vcsPla4Ex":                 AddrVcsPla4Ex,
		"vcsPlp4Ex":                 AddrVcsPlp4Ex,
		"vcsJmpToRam3":              AddrVcsJmpToRam3,
		"vcsWaitForAddress":         AddrVcsWaitForAddress,
		"vcsInjectDmaData":          AddrInjectDmaData,
	}
}

// the overblank program is copied into RIOT RAM between frames. it holds the
// playfield quiet while the timer runs down and then idles at the last
// address, where vcsEndOverblank() retakes control.
const overblankOrigin = 0x0080

var overblank = []byte{
	0xa9, 0x82, // lda #$82
	0x85, 0x01, // sta VBLANK
	0xa9, 0x2c, // lda #$2c
	0x8d, 0x96, 0x02, // sta TIM64T
	0xa9, 0x00, // lda #$00
	0x85, 0x02, // sta WSYNC        (loop)
	0x85, 0x2b, // sta HMCLR
	0xad, 0x84, 0x02, // lda INTIM
	0xd0, 0xf7, // bne loop
	0xa9, 0x00, // lda #$00
	0x85, 0x01, // sta VBLANK
	0x85, 0x02, // sta WSYNC
	0x85, 0x0d, // sta PF0
	0x85, 0x0e, // sta PF1
	0x85, 0x0f, // sta PF2
	0x85, 0x06, // sta COLUP0
	0x85, 0x07, // sta COLUP1
	0x85, 0x08, // sta COLUPF
	0x85, 0x09, // sta COLUBK
	0xea,             // nop
	0x4c, 0xac, 0x00, // jmp $00ac  (idle at end of program)
}

// the address the host idles at once the overblank program has run its
// course. vcsEndOverblank() yields on this address.
const overblankDone = overblankOrigin + 0x2c
