// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// fps.go implements the per-frame clock (§4.6), grounded on the
// teacher's profile.go for the "reset each update, consumed by the
// application" shape. Fine/coarse FPS are additionally exported as
// Prometheus gauges (the way r3e-network-service_layer's metrics
// package exposes service health) so a headless server build can be
// scraped without touching the core's own accounting.

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FPSClock tracks the per-frame delta and the fine/coarse frames-per-
// second figures and broadcasts a status command once per wall-clock
// second.
type FPSClock struct {
	prev        time.Time
	Delta       time.Duration
	Fine        float64 // 1/delta, recomputed every Tick.
	Coarse      float64 // frames counted across the last full second.
	frameCount  int
	lastSecond  int64
	Frames      uint64

	bus *Bus

	fineGauge   prometheus.Gauge
	coarseGauge prometheus.Gauge
}

// NewFPSClock creates a clock that broadcasts its per-second status
// command on bus (may be nil to disable broadcast, e.g. in tests).
func NewFPSClock(bus *Bus) *FPSClock {
	c := &FPSClock{
		bus: bus,
		fineGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clap_fps_fine",
			Help: "Instantaneous frames-per-second computed from the latest frame delta.",
		}),
		coarseGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clap_fps_coarse",
			Help: "Frame count over the most recently completed wall-clock second.",
		}),
	}
	return c
}

// Collectors returns the Prometheus collectors for registration by a
// headless server's metrics endpoint.
func (c *FPSClock) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.fineGauge, c.coarseGauge}
}

// Tick samples now and updates delta/fine/coarse, broadcasting a status
// command exactly once per crossed wall-clock second (§8).
func (c *FPSClock) Tick(now time.Time) {
	if c.prev.IsZero() {
		c.Delta = 16 * time.Millisecond
	} else {
		c.Delta = now.Sub(c.prev)
	}
	c.prev = now
	c.Frames++
	c.frameCount++

	sec := now.Unix()
	if c.lastSecond == 0 {
		c.lastSecond = sec
	}
	if sec != c.lastSecond {
		c.Coarse = float64(c.frameCount)
		c.frameCount = 0
		c.lastSecond = sec
		c.coarseGauge.Set(c.Coarse)
		if c.bus != nil {
			c.bus.Send(&Message{
				Topic: TopicCommand,
				Command: &Command{
					Flags:      CommandFlags{Status: true},
					FPS:        uint32(c.Coarse),
					SysSeconds: uint32(sec),
				},
			})
		}
	}

	if c.Delta < time.Second {
		c.Fine = float64(time.Second) / float64(c.Delta)
	} else {
		c.Fine = 1
	}
	c.fineGauge.Set(c.Fine)
}
