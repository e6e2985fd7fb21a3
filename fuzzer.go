// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// fuzzer.go implements synthetic input injection for CI soak testing
// (§4.9 step 6, §4.10 "Fuzzer"): each frame it randomly sets a handful
// of booleans and axes, occasionally inserting random pauses, gated by
// the toggle_fuzzer command flag.

import (
	"math/rand"
	"time"

	"github.com/onehandclap/clap/device"
)

// fuzzKeys are the buttons the fuzzer randomly presses and releases.
var fuzzKeys = []string{"W", "A", "S", "D", "Sp", "Esc", "Lm", "Rm"}

// fuzzer injects synthetic input when enabled, so CI can soak-test the
// frame orchestrator without a human or a recorded input trace.
type fuzzer struct {
	enabled  bool
	rng      *rand.Rand
	pauseFor int // frames remaining in a synthetic pause, 0 when not pausing.
}

func newFuzzer(seed int64) *fuzzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &fuzzer{rng: rand.New(rand.NewSource(seed))}
}

// setEnabled flips fuzzing on or off, driven by the toggle_fuzzer
// command flag.
func (f *fuzzer) setEnabled(enabled bool) { f.enabled = enabled }

// step injects zero or more synthetic events into dev for this frame
// (§4.9 step 6, run before the platform input queue is drained).
func (f *fuzzer) step(dev device.Device) {
	if !f.enabled {
		return
	}
	if f.pauseFor > 0 {
		f.pauseFor--
		return
	}
	// Occasionally insert a multi-frame pause, simulating idle input.
	if f.rng.Intn(200) == 0 {
		f.pauseFor = f.rng.Intn(30)
		return
	}

	events := 1 + f.rng.Intn(3)
	for i := 0; i < events; i++ {
		key := fuzzKeys[f.rng.Intn(len(fuzzKeys))]
		dev.Inject(device.Event{Key: key, Pressed: f.rng.Intn(2) == 0})
	}
	if f.rng.Intn(4) == 0 {
		dev.Inject(device.Event{Mx: f.rng.Intn(1920), My: f.rng.Intn(1080)})
	}
	if f.rng.Intn(10) == 0 {
		dev.Inject(device.Event{Scroll: f.rng.Intn(5) - 2})
	}
}
