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

// Package logger is the central log for the project. Log entries are tagged
// with the sub-system they originate from and are kept in memory until asked
// for. An echo writer can be attached for immediate output.
//
// Control-flow signals (the vcslib StopExecution error in particular) must
// never be logged. The log is for genuine events only.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// the maximum number of entries in the central log. oldest entries are lost
// first.
const maxEntries = 256

// Entry is a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string

	// number of times this entry has repeated without interruption
	repeated int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

type central struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

var log = central{
	entries: make([]Entry, 0, maxEntries),
}

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	log.crit.Lock()
	defer log.crit.Unlock()

	tag = strings.ReplaceAll(tag, "\n", " ")
	detail = strings.ReplaceAll(detail, "\n", " ")

	// repeated entries are collapsed into one
	if len(log.entries) > 0 {
		e := &log.entries[len(log.entries)-1]
		if e.Tag == tag && e.Detail == detail {
			e.repeated++
			e.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	log.entries = append(log.entries, e)
	if len(log.entries) > maxEntries {
		log.entries = log.entries[len(log.entries)-maxEntries:]
	}

	if log.echo != nil {
		io.WriteString(log.echo, e.String())
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, pattern string, values ...interface{}) {
	Log(tag, fmt.Sprintf(pattern, values...))
}

// Clear all entries from the central logger.
func Clear() {
	log.crit.Lock()
	defer log.crit.Unlock()
	log.entries = log.entries[:0]
}

// SetEcho attaches a writer that receives every new entry as it arrives. A
// nil writer turns echoing off.
func SetEcho(w io.Writer) {
	log.crit.Lock()
	defer log.crit.Unlock()
	log.echo = w
}

// Write the entire log to the io.Writer.
func Write(w io.Writer) {
	Tail(w, -1)
}

// Tail writes the last number of entries to the io.Writer. A negative number
// writes every entry.
func Tail(w io.Writer, number int) {
	log.crit.Lock()
	defer log.crit.Unlock()

	if number < 0 || number > len(log.entries) {
		number = len(log.entries)
	}

	for _, e := range log.entries[len(log.entries)-number:] {
		io.WriteString(w, e.String())
	}
}
