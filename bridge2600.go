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
	"fmt"
	"os"

	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/hardware/arm"
	"github.com/jetsetilly/bridge2600/hardware/bus"
	"github.com/jetsetilly/bridge2600/hardware/vcslib"
	"github.com/jetsetilly/bridge2600/logger"
	"github.com/jetsetilly/bridge2600/modalflag"
	"github.com/jetsetilly/bridge2600/monitor"
	"github.com/jetsetilly/bridge2600/statsview"
)

const (
	sramOrigin = 0x20000000
	sramSize   = 0x1000
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "MONITOR")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "MONITOR":
		err = mon(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// exitFatal ends the process on conditions the session cannot continue
// from. satisfies the vcslib.Fatal interface.
type exitFatal struct{}

func (f exitFatal) Raisef(pattern string, values ...interface{}) {
	fmt.Printf("* fatal: %s\n", fmt.Sprintf(pattern, values...))
	logger.Write(os.Stderr)
	os.Exit(30)
}

// session collects the pieces of a bridge emulation: the ARM core, the
// transaction queue, the bridge itself and the host-side engine that
// consumes the queue.
type session struct {
	core   *arm.Core
	queue  *bus.Queue
	bridge *vcslib.Bridge
	host   *host
}

func newSession() *session {
	s := &session{
		core:  arm.NewCore(sramOrigin, sramSize),
		queue: bus.NewQueue(bus.DefaultCapacity),
	}
	s.bridge = vcslib.NewBridge(s.queue, exitFatal{})
	s.host = newHost(s.queue, s.bridge)
	s.bridge.Reset()
	return s
}

// call dispatches a stub, stepping the host whenever the bridge stalls.
// This is the synchronous equivalent of the scheduler loop in a full
// emulation: a stall pauses the "ARM" and runs the bus instead.
func (s *session) call(address uint32) error {
	for {
		_, _, err := s.bridge.Fetch16(address, s.core)
		if err == nil {
			return nil
		}
		if !curated.Is(err, vcslib.StopExecution) {
			return err
		}
		if err := s.host.step(); err != nil {
			return err
		}
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	stats := md.AddBool("stats", false, "launch statistics server")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* statsview not included in this build")
		}
	}

	s := newSession()
	logger.Log("run", "session created")

	// a scripted firmware session exercising each class of operation

	// frame preamble
	if err := s.call(vcslib.AddrVcsCopyOverblankToRiotRam); err != nil {
		return err
	}
	if err := s.call(vcslib.AddrVcsStartOverblank); err != nil {
		return err
	}
	if err := s.call(vcslib.AddrVcsEndOverblank); err != nil {
		return err
	}
	logger.Log("run", "overblank complete")

	// a five cycle write to a TIA register
	s.core.SetRegister(0, 0x19)
	s.core.SetRegister(1, 0x7e)
	if err := s.call(vcslib.AddrVcsWrite5); err != nil {
		return err
	}

	// a block fill of ARM memory
	s.core.SetRegister(0, sramOrigin+0x0100)
	s.core.SetRegister(1, 0x00)
	s.core.SetRegister(3, 0x0200)
	if err := s.call(vcslib.AddrMemset); err != nil {
		return err
	}

	// a read of host memory through the two phase handshake. the host RAM
	// is seeded so there is something to read back
	s.host.poke(0x00f0, 0x5a)
	s.core.SetRegister(0, 0x00f0)
	if err := s.call(vcslib.AddrVcsRead4); err != nil {
		return err
	}
	logger.Logf("run", "read %#02x from host address 0x00f0", s.core.Register(0))

	if err := s.host.drain(); err != nil {
		return err
	}

	fmt.Printf("bus cycles: %d\n", s.host.cycles)
	fmt.Printf("read result: %#02x\n", s.core.Register(0))

	return nil
}

func mon(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	s := newSession()

	fmt.Println(monitor.Banner())

	m := &monitor.Monitor{
		Bridge: s.bridge,
		Queue:  s.queue,
		Core:   s.core,
		Step:   s.host.step,
	}

	return m.Launch()
}
