// Bench tool: renders the register frame and display line for a given
// configuration without touching the front panel, and can push a single
// frame to the chip over either connector.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"periph.io/x/host/v3"

	"rfmodctl/internal/config"
	"rfmodctl/internal/display"
	"rfmodctl/internal/modulator"
	"rfmodctl/internal/transport"
	"rfmodctl/internal/tuner"
)

func main() {
	if err := run(); err != nil {
		slog.Error("run debug tool", "error", err)
		os.Exit(1)
	}
}

func run() error {
	freqArg := flag.String("freq", "471.25", "frequency in MHz, e.g. 471.25")
	standardArg := flag.String("standard", "I", "broadcast standard: M, BG, I or DK")
	testPattern := flag.Bool("testpattern", true, "enable the test pattern")
	table := flag.Bool("table", false, "dump the full reachable channel plan and exit")
	write := flag.Bool("write", false, "write the frame to the chip")
	connector := flag.String("connector", "i2c", "bus connector for -write: i2c or serial")
	i2cBus := flag.String("i2c-bus", "", "i2c bus name for -write")
	serialPort := flag.String("serial-port", "", "serial bridge port for -write")
	serialBaud := flag.Int("serial-baud", config.DefaultSerialBaud, "serial bridge baud rate")
	addr := flag.Uint("addr", uint(modulator.DefaultAddr), "modulator bus address")
	flag.Parse()

	if *table {
		dumpChannelPlan()
		return nil
	}

	freq, err := parseFrequency(*freqArg)
	if err != nil {
		return err
	}
	standard, err := tuner.ParseStandard(*standardArg)
	if err != nil {
		return err
	}

	s := tuner.Settings{
		TestPattern: *testPattern,
		Standard:    standard,
		Frequency:   freq,
	}

	printSettings(s)

	if !*write {
		return nil
	}

	bus, err := openBus(*connector, *i2cBus, *serialPort, *serialBaud)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := bus.Close(); closeErr != nil {
			slog.Warn("close bus", "error", closeErr)
		}
	}()

	dev := modulator.NewDevice(bus, uint16(*addr), slog.Default())
	if err := dev.Apply(s); err != nil {
		return err
	}
	fmt.Println("frame written")

	return nil
}

func printSettings(s tuner.Settings) {
	d := tuner.Derive(s.Frequency)

	label := "--"
	if d.Band != tuner.BandNone {
		label = fmt.Sprintf("%c%02d", d.Band, d.Channel)
	}

	fmt.Printf("channel:  %s\n", label)
	fmt.Printf("freq:     %d.%02d MHz (word %d)\n", s.Frequency/100, s.Frequency%100, d.FrequencyWord)
	fmt.Printf("divisor:  %d (exp %d)\n", d.Divisor(), d.DivisorExp)
	fmt.Printf("standard: %s\n", s.Standard)
	fmt.Printf("pattern:  %v\n", s.TestPattern)
	fmt.Printf("display:  %q\n", display.Render(s, display.CursorOff).Text())
	fmt.Printf("frame:    %s\n", modulator.Pack(s))
}

func dumpChannelPlan() {
	freq := tuner.FrequencyMin
	for {
		d := tuner.Derive(freq)
		label := "--"
		if d.Band != tuner.BandNone {
			label = fmt.Sprintf("%c%02d", d.Band, d.Channel)
		}
		fmt.Printf("%4s %7.2f MHz div %2d word %4d\n", label, float64(freq)/100, d.Divisor(), d.FrequencyWord)

		freq = tuner.StepUp(freq)
		if freq == tuner.FrequencyMin {
			return
		}
	}
}

// parseFrequency accepts MHz with up to two decimals ("471.25") or a raw
// value in 1/100 MHz ("47125"), bounded to the tunable range.
func parseFrequency(raw string) (uint32, error) {
	raw = strings.TrimSpace(raw)
	var v uint64
	if whole, frac, ok := strings.Cut(raw, "."); ok {
		w, err := strconv.ParseUint(whole, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid frequency %q", raw)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseUint(frac[:2], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid frequency %q", raw)
		}
		v = w*100 + f
	} else {
		var err error
		v, err = strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid frequency %q", raw)
		}
	}

	if v < uint64(tuner.FrequencyMin) || v > uint64(tuner.FrequencyMax) {
		return 0, fmt.Errorf("frequency %q outside %d.%02d-%d.%02d MHz",
			raw, tuner.FrequencyMin/100, tuner.FrequencyMin%100,
			tuner.FrequencyMax/100, tuner.FrequencyMax%100)
	}

	return uint32(v), nil
}

func openBus(connector, i2cBus, serialPort string, serialBaud int) (transport.Bus, error) {
	switch connector {
	case "serial":
		return transport.OpenSerialBridge(serialPort, serialBaud)
	case "i2c":
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("init periph host: %w", err)
		}
		return transport.OpenI2C(i2cBus)
	default:
		return nil, fmt.Errorf("unknown connector: %s", connector)
	}
}
