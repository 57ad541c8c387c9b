// main.go - sidplay: play or render SIDR register dumps

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	sidplayfp "github.com/OPNA2608/libsidplayfp"
)

func main() {
	var (
		modelName  string
		sampleRate int
		wavPath    string
		seconds    float64
		scope      bool
		forceLoop  bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&modelName, "model", "", "Chip model: 6581 or 8580 (default: from file, demo 6581)")
	flagSet.IntVar(&sampleRate, "rate", 44100, "Output sample rate in Hz")
	flagSet.StringVar(&wavPath, "wav", "", "Render to wav file instead of playing")
	flagSet.Float64Var(&seconds, "seconds", 30, "Duration for wav rendering")
	flagSet.BoolVar(&scope, "scope", false, "Show an oscilloscope window while playing")
	flagSet.BoolVar(&forceLoop, "loop", false, "Loop even when the tune does not ask for it")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: sidplay [-model 6581|8580] [-rate hz] [-wav out.wav -seconds n] [-scope] [-loop] [tune.sidr]")
		fmt.Println("With no file the built-in demo tune plays.")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	filename := flagSet.Arg(0)

	var dump *sidplayfp.SIDDump
	if filename != "" {
		var err error
		dump, err = sidplayfp.LoadSIDDumpFile(filename)
		if err != nil {
			fmt.Printf("Error loading %s: %v\n", filename, err)
			os.Exit(1)
		}
		if uint32(sampleRate) != dump.SampleRate {
			fmt.Printf("Note: tune was captured at %d Hz, playing at %d Hz\n",
				dump.SampleRate, sampleRate)
			rescaleEvents(dump, sampleRate)
		}
	} else {
		dump = sidplayfp.DemoTune(sidplayfp.MODEL_6581, sampleRate)
	}

	model := dump.Model
	switch modelName {
	case "":
	case "6581":
		model = sidplayfp.MODEL_6581
	case "8580":
		model = sidplayfp.MODEL_8580
	default:
		fmt.Printf("Error: unknown chip model %q\n", modelName)
		os.Exit(1)
	}

	player, err := sidplayfp.NewSIDPlayer(model, int(dump.ClockHz), sampleRate)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if forceLoop {
		player.SetForceLoop(true)
	}
	player.LoadDump(dump)
	player.SetPlaying(true)

	if wavPath != "" {
		if err := sidplayfp.RenderWAV(player, wavPath, seconds); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rendered %.1fs to %s\n", seconds, wavPath)
		return
	}

	output, err := sidplayfp.NewAudioOutput(sidplayfp.AUDIO_BACKEND_OTO, sampleRate)
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	defer output.Close()
	output.SetSource(player)
	output.Start()

	if filename == "" {
		fmt.Printf("Playing demo tune on %v\n", model)
	} else {
		fmt.Printf("Playing %s on %v\n", filename, model)
	}

	if scope {
		view := sidplayfp.NewScopeView(player, "sidplay")
		if err := view.Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Keys: space = pause, q = quit")
	control := sidplayfp.NewTerminalControl(player)
	control.Start()
	defer control.Stop()

	for {
		select {
		case <-control.Quit():
			fmt.Println("\r")
			return
		case <-time.After(100 * time.Millisecond):
			if !player.IsPlaying() {
				pos, total := player.Position()
				if total > 0 && pos >= total {
					return
				}
			}
		}
	}
}

// rescaleEvents retimes a capture onto a different output sample rate.
func rescaleEvents(d *sidplayfp.SIDDump, sampleRate int) {
	ratio := float64(sampleRate) / float64(d.SampleRate)
	for i := range d.Events {
		d.Events[i].Sample = uint64(float64(d.Events[i].Sample) * ratio)
	}
	d.TotalSamples = uint64(float64(d.TotalSamples) * ratio)
	d.LoopSample = uint64(float64(d.LoopSample) * ratio)
	d.SampleRate = uint32(sampleRate)
}
