// This file is part of Eightbench.
//
// Eightbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Eightbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Eightbench.  If not, see <https://www.gnu.org/licenses/>.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/eightbench/analysis"
	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/emulation"
	"github.com/jetsetilly/eightbench/hardware/c64"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/zxspectrum"
	"github.com/jetsetilly/eightbench/logger"
	"github.com/jetsetilly/eightbench/macro"
	"github.com/jetsetilly/eightbench/modalflag"
	"github.com/jetsetilly/eightbench/monitor"
	"github.com/jetsetilly/eightbench/paths"
	"github.com/jetsetilly/eightbench/prefs"
	"github.com/jetsetilly/eightbench/statsview"
	"github.com/jetsetilly/eightbench/tap"
	"github.com/jetsetilly/eightbench/terminal"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// stop handling the interrupt signal in the main thread. used by MONITOR
	// mode, which handles the interrupt key itself.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
			}
		}
	}

	os.Exit(exitVal)
}

func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "SUMMARY", "REPLAY")
	prefsCl := md.AddString("prefs", "", "preferences for this run only (key::value; key::value)")
	log := md.AddBool("log", false, "echo log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *prefsCl != "" {
		prefs.PushCommandLineStack(*prefsCl)
	}

	var prf *preferences
	pth, err := paths.ResourcePath("", prefsFile)
	if err == nil {
		prf, err = newPreferences(pth)
	}
	if err != nil {
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *prefsCl != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "eightbench", "unused preferences: %s", unused)
		}
	}

	if *log {
		prf.echo.Set(true)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, prf)
	case "MONITOR":
		err = monitorMode(md, prf, sync)
	case "SUMMARY":
		err = summary(md, prf)
	case "REPLAY":
		err = replay(md, prf)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	if *stats {
		fmt.Fprintln(md.Output, "stats server still running. press ctrl-c to end")
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags shared by the modes that run a Spectrum.
type spectrumFlags struct {
	model  *string
	origin *uint16
	rom    *string
	watch  *string
	brk    *bool
}

func addSpectrumFlags(md *modalflag.Modes, prf *preferences) spectrumFlags {
	return spectrumFlags{
		model:  md.AddString("machine", prf.model.String(), "spectrum model: 48k, 128k"),
		origin: md.AddAddress("origin", 0x8000, "load address of program"),
		rom:    md.AddString("rom", "", "ROM image for ROM 0. a boot stub is used if not specified"),
		watch:  md.AddString("watch", "", "access handler (read|write|exec:$start[-$end])"),
		brk:    md.AddBool("break", false, "stop when the access handler is hit"),
	}
}

// create a Spectrum and load the program in filename.
func (f spectrumFlags) create(filename string, prf *preferences) (*zxspectrum.Spectrum, error) {
	model, err := zxspectrum.ParseModel(*f.model)
	if err != nil {
		return nil, err
	}

	zx, err := zxspectrum.NewSpectrum(model)
	if err != nil {
		return nil, err
	}
	zx.Tap.Store.RegisterDataAccess = prf.dataAccess.Get().(bool)

	if *f.rom != "" {
		data, err := os.ReadFile(*f.rom)
		if err != nil {
			return nil, curated.Errorf(zxspectrum.LoadError, err)
		}
		if err := zx.LoadROM(0, data); err != nil {
			return nil, err
		}
	} else {
		zx.InstallBootStub(*f.origin)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(zxspectrum.LoadError, err)
	}
	if err := zx.Load(*f.origin, data); err != nil {
		return nil, err
	}

	if *f.watch != "" {
		if err := addWatch(zx.Tap.Store, *f.watch, *f.brk); err != nil {
			return nil, err
		}
	}

	logger.Logf(logger.Allow, "eightbench", "loaded %d bytes at $%04x", len(data), *f.origin)

	return zx, nil
}

// addWatch parses an access handler description of the form:
//
//	type:start[-end]
func addWatch(store *analysis.Store, watch string, brk bool) error {
	typ, rng, ok := strings.Cut(watch, ":")
	if !ok {
		return curated.Errorf("watch: %s: no access type", watch)
	}

	var at analysis.AccessType
	switch strings.ToLower(typ) {
	case "read":
		at = analysis.AccessRead
	case "write":
		at = analysis.AccessWrite
	case "exec", "execute":
		at = analysis.AccessExecute
	default:
		return curated.Errorf("watch: %s: unknown access type", watch)
	}

	s, e, isRange := strings.Cut(rng, "-")
	start, err := modalflag.ParseAddress(s)
	if err != nil {
		return curated.Errorf("watch: %v", err)
	}
	end := start
	if isRange {
		end, err = modalflag.ParseAddress(e)
		if err != nil {
			return curated.Errorf("watch: %v", err)
		}
	}

	_, err = store.AddAccessHandler(watch, at, start, end, brk)
	return err
}

func run(md *modalflag.Modes, prf *preferences) error {
	md.NewMode()
	zf := addSpectrumFlags(md, prf)
	frames := md.AddInt("frames", prf.frames.Get().(int), "number of frames to run")
	duration := md.AddDuration("duration", 0, "run for an amount of machine time instead of a number of frames")
	fps := md.AddInt("fps", 0, "frames per second. zero for no limit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program file required for %s mode", md)
	case 1:
		zx, err := zf.create(md.GetArg(0), prf)
		if err != nil {
			return err
		}

		if *duration > 0 {
			zx.Run(*duration)
		} else {
			lmtr := emulation.NewLimiter(float32(*fps))
			defer lmtr.Stop()
			for range *frames {
				zx.RunFrame()
				if zx.Break() {
					break // for loop
				}
				lmtr.Wait()
			}
		}

		if zx.Break() {
			fmt.Fprintf(md.Output, "break at $%04x\n", zx.PC())
		}
		fmt.Fprintf(md.Output, "frames: %d  pc: $%04x\n", zx.Frames(), zx.PC())
		io.WriteString(md.Output, zx.Summary())
		report(md.Output, zx.Tap)
		io.WriteString(md.Output, zx.IO.Summary())

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func monitorMode(md *modalflag.Modes, prf *preferences, sync *mainSync) error {
	md.NewMode()
	zf := addSpectrumFlags(md, prf)
	fps := md.AddInt("fps", 50, "frames per second while running. zero for no limit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program file required for %s mode", md)
	case 1:
		zx, err := zf.create(md.GetArg(0), prf)
		if err != nil {
			return err
		}

		term, err := terminal.Open(md.Output)
		if err != nil {
			return err
		}
		defer term.Close()

		// the terminal is in raw mode so log output needs the same line
		// ending treatment as the monitor output
		if prf.echo.Get().(bool) {
			logger.SetEcho(logger.NewColorizer(term))
			defer logger.SetEcho(logger.NewColorizer(os.Stdout))
		}

		sync.state <- stateRequest{req: reqNoIntSig}

		return monitor.NewMonitor(zx, term, term, float32(*fps)).Run()

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func summary(md *modalflag.Modes, prf *preferences) error {
	md.NewMode()
	machine := md.AddString("machine", prf.model.String(), "machine: c64, 48k, 128k")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var reg *banks.Registry

	if strings.EqualFold(strings.TrimSpace(*machine), "c64") {
		c, err := c64.NewC64()
		if err != nil {
			return err
		}
		reg = c.Tap.Registry
		io.WriteString(md.Output, c.Summary())
	} else {
		model, err := zxspectrum.ParseModel(*machine)
		if err != nil {
			return err
		}
		zx, err := zxspectrum.NewSpectrum(model)
		if err != nil {
			return err
		}
		reg = zx.Tap.Registry
		io.WriteString(md.Output, zx.Summary())
	}

	fmt.Fprintln(md.Output)
	io.WriteString(md.Output, reg.Summary())

	return nil
}

func replay(md *modalflag.Modes, prf *preferences) error {
	md.NewMode()
	load := md.AddString("load", "", "program to load into RAM before the replay")
	origin := md.AddAddress("origin", 0x0801, "load address of program")
	watch := md.AddString("watch", "", "access handler (read|write|exec:$start[-$end])")
	brk := md.AddBool("break", false, "stop when the access handler is hit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("macro file required for %s mode", md)
	case 1:
		c, err := c64.NewC64()
		if err != nil {
			return err
		}
		c.Tap.Store.RegisterDataAccess = prf.dataAccess.Get().(bool)

		if *load != "" {
			data, err := os.ReadFile(*load)
			if err != nil {
				return curated.Errorf(c64.LoadError, err)
			}
			if err := c.Load(*origin, data); err != nil {
				return err
			}
		}

		if *watch != "" {
			if err := addWatch(c.Tap.Store, *watch, *brk); err != nil {
				return err
			}
		}

		mcr, err := macro.NewMacro(md.GetArg(0), c.Mem, c.Mem, c.SetRaster)
		if err != nil {
			return err
		}
		res, err := mcr.Run()
		if err != nil {
			return err
		}

		if res.Break {
			fmt.Fprintln(md.Output, "replay stopped by access handler")
		}
		fmt.Fprintf(md.Output, "cycles: %d\n", res.Cycles)
		io.WriteString(md.Output, c.Summary())
		report(md.Output, c.Tap)
		io.WriteString(md.Output, c.IO.Summary())

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

// report writes the result of the analysis to output.
func report(output io.Writer, t *tap.Tap) {
	st := t.Store

	last := st.LastFrame()
	fmt.Fprintf(output, "last frame: %d  instructions: %d  reads: %d  writes: %d\n",
		last.Frame, last.Instructions, last.Reads, last.Writes)

	fmt.Fprintln(output)
	io.WriteString(output, st.BlocksSummary())

	for _, h := range st.InterruptHandlers() {
		fmt.Fprintf(output, "interrupt handler: %s\n", t.Registry.Describe(h))
	}

	for _, a := range st.SelfModifying() {
		r := t.Map.Resolve(a)
		w, _ := st.GetLastWriter(a)
		fmt.Fprintf(output, "self-modifying: $%04x (%s) last written by %s\n", a, t.Registry.Describe(r), t.Registry.Describe(w))
	}

	for _, h := range st.AccessHandlers() {
		fmt.Fprintln(output, h)
		for _, c := range h.Callers() {
			fmt.Fprintf(output, "  caller: %s\n", t.Registry.Describe(c))
		}
	}
}
