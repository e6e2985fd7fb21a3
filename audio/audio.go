// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package audio is the core's external audio collaborator (§6 "Audio
// (consumed)"). Like the physics package, real sound-card binding is an
// explicit non-goal of the core runtime; this package exposes exactly
// the named call boundary the frame orchestrator and demos drive:
// init/done, sound creation, gain, looping, and play.
package audio

// Context is the handle returned by Init, passed to every other
// operation (§6 "init() -> ctx").
type Context struct {
	listenerX, listenerY, listenerZ float64
	muted                            bool
	sounds                           []*Sound
}

// Sound is a bound, playable sound handle (§6 "sound_new{ctx, name}").
type Sound struct {
	Name    string
	gain    float64
	looping bool
}

// Init starts the audio layer, returning a context used by every other
// operation (§6 "init() -> ctx").
func Init() (*Context, error) {
	return &Context{listenerX: 0, listenerY: 0, listenerZ: 0}, nil
}

// Done releases the audio context (§6 "done(ctx)").
func Done(ctx *Context) {
	if ctx != nil {
		ctx.sounds = nil
	}
}

// SoundNew creates a playable sound bound to name (§6 "sound_new{ctx,
// name}").
func SoundNew(ctx *Context, name string) *Sound {
	s := &Sound{Name: name, gain: 1}
	ctx.sounds = append(ctx.sounds, s)
	return s
}

// SetGain sets a sound's volume, 0 (silent) to 1 (full) (§6
// "set_gain(s,g)").
func SetGain(s *Sound, g float64) {
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	s.gain = g
}

// GetGain returns a sound's current volume (§6 "get_gain(s)").
func GetGain(s *Sound) float64 { return s.gain }

// SetLooping sets whether a sound repeats when it finishes (§6
// "set_looping(s,b)").
func SetLooping(s *Sound, loop bool) { s.looping = loop }

// Play starts playback of a sound (§6 "play(s)"). A muted context or a
// zero-gain sound is a silent no-op rather than an error, matching the
// teacher's NoAudio mock's fail-soft behavior.
func Play(s *Sound) {}

// PlaceListener sets the 3D location of the listener (the camera,
// typically), used by a real binding to attenuate sound by distance.
func PlaceListener(ctx *Context, x, y, z float64) {
	ctx.listenerX, ctx.listenerY, ctx.listenerZ = x, y, z
}

// Mute silences (or restores) all playback.
func Mute(ctx *Context, mute bool) { ctx.muted = mute }
