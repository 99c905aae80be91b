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

package bus

import (
	"strings"

	"github.com/jetsetilly/bridge2600/curated"
)

// DefaultCapacity is a queue capacity suitable for every operation the
// bridge performs. The largest single dispatch is the overblank copy, which
// injects five transactions per program byte.
const DefaultCapacity = 512

// Queue is an ordered, bounded queue of bus transactions. Injection happens
// at the tail, consumption at the head. A single injection cursor decides
// the address of the next injected byte.
//
// The zero value is not usable. Use NewQueue().
type Queue struct {
	transactions []Transaction
	head         int
	tail         int
	used         int

	nextInjectAddress uint16
	timestamp         uint64
}

// NewQueue is the preferred method of initialisation of the Queue type.
//
// Capacity is physical. Backpressure limits are the dispatcher's concern,
// not the queue's.
func NewQueue(capacity int) *Queue {
	return &Queue{
		transactions: make([]Transaction, capacity),
	}
}

// Reset empties the queue and returns the injection cursor to zero.
func (q *Queue) Reset() {
	q.head = 0
	q.tail = 0
	q.used = 0
	q.nextInjectAddress = 0
	q.timestamp = 0
}

// SetTimestamp records the ARM cycle count to stamp on subsequent
// transactions.
func (q *Queue) SetTimestamp(cycles uint64) {
	q.timestamp = cycles
}

// Size returns the number of pending transactions.
func (q *Queue) Size() int {
	return q.used
}

// NextInjectAddress returns the current injection cursor.
func (q *Queue) NextInjectAddress() uint16 {
	return q.nextInjectAddress
}

// SetNextInjectAddress relocates the injection cursor. Required after an
// injected JMP, when subsequent bytes must land at the jump target.
func (q *Queue) SetNextInjectAddress(address uint16) *Queue {
	q.nextInjectAddress = address & Memtop
	return q
}

// InjectROM appends a byte at the injection cursor and advances the cursor.
func (q *Queue) InjectROM(value uint8) *Queue {
	q.push(Transaction{Address: q.nextInjectAddress, Value: value})
	q.nextInjectAddress = (q.nextInjectAddress + 1) & Memtop
	return q
}

// InjectROMAt relocates the injection cursor and then appends a byte there.
func (q *Queue) InjectROMAt(value uint8, address uint16) *Queue {
	return q.SetNextInjectAddress(address).InjectROM(value)
}

// Yield appends a marker requiring the host to execute up to the address.
// The injection cursor is not moved.
func (q *Queue) Yield(address uint16) *Queue {
	q.push(Transaction{Address: address & Memtop, Yield: true})
	return q
}

// StuffByte appends a bus-stuff entry carrying a mask. The injection cursor
// is not moved.
func (q *Queue) StuffByte(mask uint8, address uint16) *Queue {
	q.push(Transaction{Address: address & Memtop, Value: mask, BusStuff: true})
	return q
}

// Next pops the transaction at the head of the queue. The second return
// value is false if the queue is empty.
func (q *Queue) Next() (Transaction, bool) {
	if q.used == 0 {
		return Transaction{}, false
	}

	t := q.transactions[q.head]
	q.head = (q.head + 1) % len(q.transactions)
	q.used--
	return t, true
}

func (q *Queue) push(t Transaction) {
	// the dispatcher refuses to run once the queue reaches its backpressure
	// limit, which is far below physical capacity. overflow here is a bug
	if q.used >= len(q.transactions) {
		panic(curated.Errorf("bus: transaction queue overflow"))
	}

	t.Timestamp = q.timestamp
	q.transactions[q.tail] = t
	q.tail = (q.tail + 1) % len(q.transactions)
	q.used++
}

func (q *Queue) String() string {
	if q.used == 0 {
		return "empty"
	}

	s := strings.Builder{}
	for i := 0; i < q.used; i++ {
		s.WriteString(q.transactions[(q.head+i)%len(q.transactions)].String())
		s.WriteString("\n")
	}
	return s.String()
}
