// This file is part of Softgun.
//
// Softgun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Softgun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Softgun.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sgcore/softgun/bus"
	"github.com/sgcore/softgun/cli"
	"github.com/sgcore/softgun/clock"
	"github.com/sgcore/softgun/config"
	"github.com/sgcore/softgun/dashboard"
	"github.com/sgcore/softgun/decoder"
	"github.com/sgcore/softgun/logger"
	"github.com/sgcore/softgun/mainloop"
	"github.com/sgcore/softgun/signal"
)

// the demo board assembled by main: the subsystems wired together in
// their natural dependency order (signal graph and clock tree first, then
// the decoder-driven core, then the bus, then the command surface).
type board struct {
	signals *signal.Graph
	clocks  *clock.Tree
	ram     *bus.RAM
	bus     *bus.Map
	loop    *mainloop.Loop
	core    *core
}

// core is a deliberately tiny accumulator machine. It exists to exercise
// the decoder framework end-to-end, not to model any real ISA.
type core struct {
	pc  uint64
	acc uint64

	bus   *bus.Map
	irq   *signal.Node
	table *decoder.Table[opHandler]

	halted bool
}

type opHandler func(c *core, opcode uint64)

// the demo instruction set. one byte per instruction, the whole byte is
// the dispatch key. the immediate forms carry their operand in the low
// nibble.
func coreDescriptors() []decoder.Descriptor[opHandler] {
	return []decoder.Descriptor[opHandler]{
		{Mask: 0xff, ICode: 0x00, Name: "NOP", Length: 1, BaseCycles: 1,
			Handler: func(c *core, _ uint64) {}},
		{Mask: 0xf0, ICode: 0x10, Name: "LDI", Length: 1, BaseCycles: 1,
			Handler: func(c *core, opcode uint64) { c.acc = opcode & 0x0f }},
		{Mask: 0xf0, ICode: 0x20, Name: "ADD", Length: 1, BaseCycles: 1,
			Handler: func(c *core, opcode uint64) { c.acc += opcode & 0x0f }},
		{Mask: 0xf0, ICode: 0x30, Name: "STA", Length: 1, BaseCycles: 2,
			Handler: func(c *core, opcode uint64) {
				if err := c.bus.Write(opcode&0x0f, c.acc); err != nil {
					logger.Log("core", err)
				}
			}},
		{Mask: 0xff, ICode: 0xf0, Name: "IRQ", Length: 1, BaseCycles: 1,
			Handler: func(c *core, _ uint64) { c.irq.Set(signal.High) }},
		{Mask: 0xff, ICode: 0xff, Name: "HLT", Length: 1, BaseCycles: 1,
			Handler: func(c *core, _ uint64) { c.halted = true }},
	}
}

func newCore(b *bus.Map, irq *signal.Node) *core {
	c := &core{bus: b, irq: irq}
	c.table = decoder.Build(decoder.Config[opHandler]{
		Undefined: func(c *core, opcode uint64) {
			logger.Logf("core", "undefined opcode %#02x at %#04x", opcode, c.pc)
		},
		IndexBits:   8,
		IndexOf:     func(opcode uint64) uint64 { return opcode & 0xff },
		UnitBits:    8,
		Descriptors: coreDescriptors(),
	})
	return c
}

// step fetches, dispatches and executes one instruction. the program
// counter advance and cycle accounting follow the convention every CPU
// front-end in this design follows: the dispatch Result says how far and
// how much, the front-end applies it.
func (c *core) step() (int, error) {
	if c.halted {
		return 1, nil
	}
	opcode, err := c.bus.Read(c.pc)
	if err != nil {
		return 0, err
	}
	r := c.table.Dispatch(opcode)
	r.Handler(c, opcode)
	c.pc += uint64(r.Length)
	return r.Cycles, nil
}

func assemble(b *board) error {
	// a program that leaves 7 at address 0x05, raises the interrupt line
	// and halts
	program := []byte{
		0x13, // LDI 3
		0x24, // ADD 4
		0x35, // STA 5
		0xf0, // IRQ
		0xff, // HLT
	}
	for i, op := range program {
		if err := b.bus.Write(uint64(0x10+i), uint64(op)); err != nil {
			return err
		}
	}
	b.core.pc = 0x10
	return nil
}

func newBoard(cpuClock int) (*board, error) {
	b := &board{
		signals: signal.NewGraph(),
		clocks:  clock.NewTree(),
		bus:     bus.NewMap(),
	}

	master, err := b.clocks.New("cpu.clk")
	if err != nil {
		return nil, err
	}
	b.clocks.MakeSystemMaster(master)
	b.clocks.SetFrequency(master, uint64(cpuClock))

	pclk, err := b.clocks.New("uart.pclk")
	if err != nil {
		return nil, err
	}
	b.clocks.MakeDerived(pclk, master, 1, 4)

	irq, err := b.signals.Create("cpu.irq")
	if err != nil {
		return nil, err
	}
	intc, err := b.signals.Create("intc.in0")
	if err != nil {
		return nil, err
	}
	signal.Link(irq, intc)
	intc.Trace(func(n *signal.Node, v signal.Value, _ interface{}) {
		logger.Logf("intc", "%s is now %s", n.Name(), v)
	}, nil)

	b.ram = bus.NewRAM(0x100)
	if err := b.bus.Register(b.ram.Region("ram", 0)); err != nil {
		return nil, err
	}

	b.core = newCore(b.bus, irq)
	b.loop = mainloop.New(nil)

	if err := assemble(b); err != nil {
		return nil, err
	}
	return b, nil
}

func registerCommands(commands *cli.Commands, b *board) error {
	reg := func(name string, proc cli.Proc) error {
		return commands.Register(name, proc, nil)
	}

	if err := reg("RUN", func([]string) (cli.Result, string) {
		if err := b.loop.Run(func() (int, error) {
			cycles, err := b.core.step()
			if b.core.halted {
				b.loop.Stop()
			}
			return cycles, err
		}); err != nil {
			return cli.ERROR, err.Error()
		}
		return cli.OK, fmt.Sprintf("halted after %d cycles, acc=%d", b.loop.Cycle(), b.core.acc)
	}); err != nil {
		return err
	}

	if err := reg("STEP", func([]string) (cli.Result, string) {
		cycles, err := b.core.step()
		if err != nil {
			return cli.ERROR, err.Error()
		}
		return cli.OK, fmt.Sprintf("pc=%#04x acc=%d cycles=%d", b.core.pc, b.core.acc, cycles)
	}); err != nil {
		return err
	}

	if err := reg("CLOCKS", func([]string) (cli.Result, string) {
		s := strings.Builder{}
		for _, name := range []string{"cpu.clk", "uart.pclk"} {
			c, _ := b.clocks.Find(name)
			fmt.Fprintf(&s, "%s %sHz (ratio %s)\n", name, c.Frequency(), b.clocks.MasterRatio(c))
		}
		return cli.OK, s.String()
	}); err != nil {
		return err
	}

	if err := reg("SIGNAL", func(args []string) (cli.Result, string) {
		if len(args) != 1 {
			return cli.BADARGS, "usage: SIGNAL <name>"
		}
		n, ok := b.signals.Find(args[0])
		if !ok {
			return cli.ERROR, fmt.Sprintf("unknown signal %q", args[0])
		}
		return cli.OK, fmt.Sprintf("%s drives %s, net is %s", n.Name(), n.SelfValue(), n.Value())
	}); err != nil {
		return err
	}

	if err := reg("LOG", func([]string) (cli.Result, string) {
		s := strings.Builder{}
		logger.Tail(&s, 20)
		return cli.OK, s.String()
	}); err != nil {
		return err
	}

	return reg("QUIT", func([]string) (cli.Result, string) {
		return cli.QUIT, ""
	})
}

func run() error {
	configFile := flag.String("config", "", "configuration file ([section]/key=value)")
	dashAddr := flag.String("dashboard", "", "serve runtime stats on this address (e.g. localhost:18066)")
	clocksAddr := flag.String("clocksaddr", "localhost:18067", "serve the clocks chart on this address when -dashboard is set")
	flag.Parse()

	cpuClock := 100_000_000
	if *configFile != "" {
		cfg, err := config.Read(*configFile)
		if err != nil {
			return err
		}
		if hz, err := cfg.Int("global", "cpu_clock"); err == nil {
			cpuClock = hz
		}
	}

	b, err := newBoard(cpuClock)
	if err != nil {
		return err
	}

	if *dashAddr != "" {
		dash := dashboard.New(*dashAddr, *clocksAddr, func() map[string]float64 {
			freqs := make(map[string]float64)
			for _, name := range []string{"cpu.clk", "uart.pclk"} {
				if c, ok := b.clocks.Find(name); ok {
					freqs[name] = c.Frequency().Float64()
				}
			}
			return freqs
		})
		dash.Start()
		defer dash.Stop()
	}

	commands := cli.NewCommands()
	if err := registerCommands(commands, b); err != nil {
		return err
	}

	fmt.Printf("softgun demo board. commands: %s\n", strings.Join(commands.Names(), " "))
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			result, response := commands.Dispatch(line)
			if response != "" {
				fmt.Println(response)
			}
			if result == cli.QUIT {
				commands.Abort()
				break
			}
			if result != cli.OK {
				fmt.Println(result)
			}
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
