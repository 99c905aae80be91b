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

// Package monitor is a minimal single-keypress inspection loop for a
// bridge session. It is not a debugger; there are no breakpoints and no
// expression language. It exists so that the state of the bridge, the
// transaction queue and the ARM registers can be eyeballed between steps.
package monitor

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/hardware/arm"
	"github.com/jetsetilly/bridge2600/hardware/bus"
	"github.com/jetsetilly/bridge2600/hardware/vcslib"
	"github.com/jetsetilly/bridge2600/monitor/easyterm"
)

// the file written by the visualise command
const vizFile = "bridge_monitor.dot"

// Monitor is an interactive, single-keypress inspection loop. All fields
// must be set before Launch() is called.
type Monitor struct {
	Bridge *vcslib.Bridge
	Queue  *bus.Queue
	Core   *arm.Core

	// Step advances the host side of the emulation by one bus cycle.
	Step func() error

	term easyterm.Terminal
}

const helpText = `  h         this help
  r         ARM registers
  q         transaction queue
  b         bridge state
  s         step host one bus cycle
  c         call a stub by name
  v         write memory visualisation to ` + vizFile + `
  x         quit
`

// Launch the monitor loop. Returns when the user quits or on a read error
// from the input terminal.
func (mon *Monitor) Launch() error {
	err := mon.term.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	defer mon.term.CleanUp()

	mon.term.Print("bridge monitor. h for help\n")

	input := make([]byte, 1)
	for {
		mon.term.CBreakMode()
		mon.term.Print("[monitor] ")
		_, err := os.Stdin.Read(input)
		mon.term.CanonicalMode()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return curated.Errorf("monitor: %v", err)
		}
		mon.term.Print("\n")

		switch input[0] {
		case 'h':
			mon.term.Print(helpText)

		case 'r':
			mon.printRegisters()

		case 'q':
			mon.term.Print("%s\n", mon.Queue.String())

		case 'b':
			mon.term.Print("%s\n", mon.Bridge.String())

		case 's':
			if err := mon.Step(); err != nil {
				mon.term.Print("* %v\n", err)
			}

		case 'c':
			mon.callStub()

		case 'v':
			if err := mon.visualise(); err != nil {
				mon.term.Print("* %v\n", err)
			} else {
				mon.term.Print("written %s\n", vizFile)
			}

		case 'x':
			return nil
		}
	}
}

func (mon *Monitor) printRegisters() {
	for i := 0; i < arm.NumRegisters; i++ {
		mon.term.Print("R%-2d %08x", i, mon.Core.Register(i))
		if (i+1)%4 == 0 {
			mon.term.Print("\n")
		} else {
			mon.term.Print("   ")
		}
	}
	mon.term.Print("cycles: %d\n", mon.Core.Cycles())
}

// callStub reads a stub name (in canonical mode, so line editing works) and
// dispatches it through the bridge. Arguments must already be in the ARM
// registers; the registers command is the way to check them.
func (mon *Monitor) callStub() {
	mon.term.Print("stub name: ")

	r := bufio.NewReader(os.Stdin)
	line, err := r.ReadString('\n')
	if err != nil {
		mon.term.Print("* %v\n", err)
		return
	}
	name := strings.TrimSpace(line)

	address, ok := vcslib.Stubs()[name]
	if !ok {
		mon.term.Print("* no stub named %s\n", name)
		return
	}

	_, _, err = mon.Bridge.Fetch16(address, mon.Core)
	if err != nil {
		if curated.Is(err, vcslib.StopExecution) {
			mon.term.Print("stalled. step the host and call again\n")
			return
		}
		mon.term.Print("* %v\n", err)
		return
	}

	mon.term.Print("ok\n")
}

func (mon *Monitor) visualise() error {
	var b bytes.Buffer
	memviz.Map(&b, mon.Bridge, mon.Queue)

	f, err := os.Create(vizFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(b.Bytes())
	if err != nil {
		return err
	}

	return nil
}

// Banner is printed by the launching mode before the monitor takes over
// the terminal.
func Banner() string {
	return fmt.Sprintf("stubs available: %d", len(vcslib.Stubs()))
}
