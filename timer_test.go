// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

func TestTimerWheelFiresInExpiryOrder(t *testing.T) {
	now := 0.0
	w := NewTimerWheel(func() float64 { return now })
	var order []string
	w.Set(2, nil, func(*Timer) { order = append(order, "second") }, nil)
	w.Set(1, nil, func(*Timer) { order = append(order, "first") }, nil)
	now = 5
	w.Run()
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("fire order = %v, want [first second]", order)
	}
}

func TestTimerSelfCancelDoesNotDisturbOthers(t *testing.T) {
	now := 0.0
	w := NewTimerWheel(func() float64 { return now })
	var a, b *Timer
	fired := map[string]int{}
	a = w.Set(1, nil, func(t *Timer) {
		fired["a"]++
		w.Cancel(a)
	}, nil)
	b = w.Set(1, nil, func(t *Timer) { fired["b"]++ }, nil)
	now = 5
	w.Run()
	if fired["a"] != 1 || fired["b"] != 1 {
		t.Fatalf("fired = %v, want a:1 b:1", fired)
	}
	if w.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", w.Len())
	}
}

func TestTimerRearmedInsideCallbackIsRetained(t *testing.T) {
	now := 0.0
	w := NewTimerWheel(func() float64 { return now })
	count := 0
	var rearm func(t *Timer)
	rearm = func(t *Timer) {
		count++
		if count < 3 {
			w.Set(1, t, rearm, nil)
		}
	}
	w.Set(1, nil, rearm, nil)

	now = 1
	w.Run()
	if count != 1 {
		t.Fatalf("count = %d after first expiry, want 1", count)
	}
	if w.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (re-armed timer retained)", w.Len())
	}
	now = 2
	w.Run()
	now = 3
	w.Run()
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if w.Len() != 0 {
		t.Fatalf("Len() = %d after final run, want 0", w.Len())
	}
}

func TestTimerAt30FramesThenOneMore(t *testing.T) {
	now := 0.0
	w := NewTimerWheel(func() float64 { return now })
	count := 0
	w.Set(0.5, nil, func(*Timer) { count++ }, nil)

	fine := 60.0
	for i := 0; i < 30; i++ {
		now += 1 / fine
		w.Run()
	}
	if count != 0 {
		t.Fatalf("count = %d after 30 frames, want 0", count)
	}
	now = 0.5
	w.Run()
	if count != 1 {
		t.Fatalf("count = %d after crossing 0.5s, want 1", count)
	}
}
