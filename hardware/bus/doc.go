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

// Package bus implements the transaction queue that sits between the ARM
// bridge and the 6507 side of the system.
//
// The bridge injects 6502 opcode and operand bytes into the queue. Each byte
// is addressed by the injection cursor, the 6507 address at which the byte
// will be seen once the host gets there. Yield entries mark the points the
// host must actually reach before the ARM can be considered to have observed
// the effect of an operation. Bus-stuff entries carry a mask rather than a
// literal byte; the final value on the data bus is computed downstream.
//
// The queue owns nothing about timing beyond the timestamp stamped on each
// transaction at insertion. The timestamp is the ARM cycle count most
// recently given to SetTimestamp().
package bus
