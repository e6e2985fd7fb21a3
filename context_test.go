// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

// TestExitAfterNStatusMessagesRequestsExit covers §8 scenario 6: arming
// exit_timeout = 3 requests exit on the third status message, not
// before, and leaves the countdown at zero.
func TestExitAfterNStatusMessagesRequestsExit(t *testing.T) {
	ctx, err := NewContext(ExitAfter(3))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	status := &Message{Topic: TopicCommand, Command: &Command{Flags: CommandFlags{Status: true}}}

	for i := 0; i < 2; i++ {
		ctx.handleCommand(status, ctx)
		if ctx.Device.ExitRequested() {
			t.Fatalf("exit requested after only %d status messages, want 3", i+1)
		}
	}
	ctx.handleCommand(status, ctx)
	if !ctx.Device.ExitRequested() {
		t.Fatalf("exit not requested after the 3rd status message")
	}
	if ctx.exitAfterSecs != 0 {
		t.Fatalf("exitAfterSecs = %d, want 0 after the third status message", ctx.exitAfterSecs)
	}
}

func TestToggleFuzzerCommandFlipsState(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if ctx.fuzz.enabled {
		t.Fatalf("fuzzer enabled by default")
	}
	ctx.handleCommand(&Message{Command: &Command{Flags: CommandFlags{ToggleFuzzer: true}}}, ctx)
	if !ctx.fuzz.enabled {
		t.Fatalf("fuzzer not enabled after toggle_fuzzer")
	}
	ctx.handleCommand(&Message{Command: &Command{Flags: CommandFlags{ToggleFuzzer: true}}}, ctx)
	if ctx.fuzz.enabled {
		t.Fatalf("fuzzer still enabled after a second toggle_fuzzer")
	}
}

func TestFrameRefillsProfileEachCall(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	ctx.Frame(1.0 / 60.0)
	if ctx.Profile.Renders != 1 {
		t.Fatalf("Profile.Renders = %d, want 1 after one Frame call", ctx.Profile.Renders)
	}
	if ctx.Profile.Elapsed == 0 {
		t.Fatalf("Profile.Elapsed = 0, want the dt passed to Frame")
	}
}
