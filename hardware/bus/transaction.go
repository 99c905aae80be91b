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

import "fmt"

// Memtop is the top of the 6507 address space. All addresses entering the
// queue are masked by this value.
const Memtop = 0x1fff

// Transaction is a single pending event on the 6507 bus.
type Transaction struct {
	// the 6507 address the transaction applies at. for injected bytes this
	// is the address the byte will be fetched from. for yields it is the
	// address the host must reach
	Address uint16

	// the byte placed on the data bus. for bus-stuff transactions this is
	// the stuff mask, not a literal value
	Value uint8

	// the host must execute up to Address before the ARM is resumed
	Yield bool

	// Value is a bus-stuff mask
	BusStuff bool

	// ARM cycle count at the time of insertion
	Timestamp uint64
}

func (t Transaction) String() string {
	switch {
	case t.Yield:
		return fmt.Sprintf("yield %#04x", t.Address)
	case t.BusStuff:
		return fmt.Sprintf("stuff %#04x mask=%02x", t.Address, t.Value)
	}
	return fmt.Sprintf("%#04x <- %02x", t.Address, t.Value)
}
