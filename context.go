// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// context.go implements the clap context (§3 "Clap context"), the
// process-wide frame orchestrator grounded on the teacher's eng.go:
// New/Action/Shutdown become NewContext/Run/Done, and the fixed
// ordering of input -> physics -> network -> scene -> render that
// eng.update/eng.render hard-code there is generalized into the
// eighteen-step per-frame procedure of §4.9.

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/onehandclap/clap/audio"
	"github.com/onehandclap/clap/device"
	"github.com/onehandclap/clap/physics"
	"github.com/onehandclap/clap/render"
)

// NetPoller is implemented by the net package's server/client nodes.
// The core only depends on this call boundary, never on net's types
// directly, keeping networking an optional, swappable collaborator
// (§4.9 step 10, "non-final builds only").
type NetPoller interface {
	Poll(bus *Bus)
}

// Context is the process-wide orchestrator (§3 "Clap context"). Created
// once by NewContext, destroyed by Done, which runs every registered
// exit handler.
type Context struct {
	Config Config

	Bus       *Bus
	Ring      *Ring
	Librarian *Librarian
	Settings  *Settings
	Timers    *TimerWheel
	FPS       *FPSClock
	Scene     *Scene

	Device   device.Device
	Renderer render.Renderer
	Physics  *physics.World
	Audio    *audio.Context

	Net NetPoller // nil disables step 10 entirely.

	Profile Profile // per-frame timing, zeroed and refilled every Frame call.

	input   *inputPipeline
	fuzz    *fuzzer
	freeCam *FreeCamera // nil unless a default camera was created.

	argv []string
	envp []string

	exitHandlers []func()

	frameCount    uint64
	exitAfterSecs int

	clock time.Time // fixed reference the monotonic-time helpers are measured against.
}

// NewContext runs clap_init: it builds every subsystem named by the
// supplied Config's flags and wires them together, returning a ready
// Context. Only InitializationFailed is fatal; optional subsystems
// (audio, physics) degrade to their headless stand-ins rather than
// aborting startup, matching §7 "errors in optional subsystems are
// logged and the frame continues."
func NewContext(opts ...Attr) (*Context, error) {
	cfg := configDefaults
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := &Context{
		Config: cfg,
		Bus:    NewBus(),
		Ring:   NewRing(1024),
		argv:   append([]string(nil), os.Args...),
		envp:   append([]string(nil), os.Environ()...),
		clock:  time.Now(),
	}
	ctx.Ring.AddSink(NewStdioSink(cfg.logging))

	ctx.Librarian = NewLibrarian(cfg.baseURL)
	ctx.Timers = NewTimerWheel(ctx.elapsed)
	ctx.FPS = NewFPSClock(ctx.Bus)
	ctx.Scene = NewScene(ctx)
	ctx.input = newInputPipeline()
	ctx.fuzz = newFuzzer(cfg.randomSeed)
	ctx.exitAfterSecs = cfg.exitAfterSecs

	if cfg.Flags.Has(FlagSettings) {
		ctx.Settings = NewSettings(DefaultSettingsPath(cfg.appName))
		if err := ctx.Settings.Init(cfg.settingsCallback); err != nil {
			ctx.log(LevelWarn, "settings init failed: %v", err)
		}
	}

	ctx.Renderer = render.New()
	ctx.Renderer.Viewport(int(cfg.x), int(cfg.y), int(cfg.w), int(cfg.h))

	if cfg.Flags.Has(FlagGraphics) {
		ctx.Scene.AddCamera()
		cam := ctx.Scene.Camera()
		ratio := float64(cfg.w) / float64(cfg.h)
		cam.SetPerspective(cfg.fov, ratio, cfg.near, cfg.far)
		ctx.freeCam = NewFreeCamera(cam, cfg.fov, ratio, cfg.near, cfg.far)
	}

	if cfg.Flags.Has(FlagInput) || cfg.Flags.Has(FlagGraphics) {
		ctx.Device = device.New(cfg.title, int(cfg.x), int(cfg.y), int(cfg.w), int(cfg.h))
		if err := ctx.Device.Open(); err != nil {
			return nil, Wrap(InitializationFailed, "context: display init failed", err)
		}
	}

	if cfg.Flags.Has(FlagPhys) {
		ctx.Physics = physics.Init()
	}

	if cfg.Flags.Has(FlagSound) {
		audioCtx, err := audio.Init()
		if err != nil {
			ctx.log(LevelWarn, "audio init failed: %v", err)
		} else {
			ctx.Audio = audioCtx
		}
	}

	ctx.Bus.Subscribe(TopicCommand, ctx.handleCommand, ctx)
	return ctx, nil
}

// elapsed is the TimerWheel's monotonic clock source: seconds since
// NewContext.
func (ctx *Context) elapsed() float64 { return time.Since(ctx.clock).Seconds() }

func (ctx *Context) log(level Level, format string, args ...any) {
	ctx.Ring.Write(&LogEntry{
		Time: time.Now(), Module: "clap", Func: "context", Level: level,
		Payload: fmt.Sprintf(format, args...),
	})
}

// OnExit registers fn to run during Done, in registration order.
func (ctx *Context) OnExit(fn func()) { ctx.exitHandlers = append(ctx.exitHandlers, fn) }

// handleCommand applies the subset of command flags the context itself
// owns: global exit, the exit-after countdown, restart, and fuzzer
// toggle. Networking-sourced commands (connect, log_follows) are left
// for the net package's own subscribers.
func (ctx *Context) handleCommand(msg *Message, data any) Propagation {
	cmd := msg.Command
	if cmd == nil {
		return Continue
	}
	if cmd.Flags.ToggleFuzzer {
		ctx.fuzz.setEnabled(!ctx.fuzz.enabled)
	}
	if cmd.Flags.GlobalExit {
		ctx.requestExit()
	}
	if cmd.Flags.Restart {
		ctx.restart()
	}
	if cmd.Flags.Status && ctx.exitAfterSecs > 0 {
		ctx.exitAfterSecs--
		if ctx.exitAfterSecs == 0 {
			ctx.requestExit()
		}
	}
	return Continue
}

func (ctx *Context) requestExit() {
	if ctx.Device != nil {
		ctx.Device.RequestExit()
	}
}

// restart re-execs the process with the argv/envp captured at
// NewContext, per §C.6. It does not return on success.
func (ctx *Context) restart() {
	if len(ctx.argv) == 0 {
		return
	}
	cmd := exec.Command(ctx.argv[0], ctx.argv[1:]...)
	cmd.Env = ctx.envp
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	if err := cmd.Start(); err != nil {
		ctx.log(LevelError, "restart failed: %v", err)
		return
	}
	os.Exit(0)
}

// Run drives the main loop until the device requests exit (§4.9). On a
// host-event-loop platform (browser), call Frame directly from the host
// callback instead.
func (ctx *Context) Run() {
	if ctx.Device == nil {
		return
	}
	ctx.Device.MainLoop(ctx.Frame)
}

// Frame executes the eighteen-step per-frame procedure of §4.9.
func (ctx *Context) Frame(dt float64) {
	frameStart := time.Now()
	ctx.Profile.Zero()
	ctx.Profile.Elapsed = time.Duration(dt * float64(time.Second))

	ctx.frameCount++ // 1. memory-accounting frame boundary (open).

	ctx.FPS.Tick(time.Now()) // 2. FPS clock.
	ctx.Timers.Run()         // 3. expired timers.

	if ctx.Renderer != nil {
		vx, vy, vw, vh := ctx.Renderer.GetViewport() // 4. query viewport.
		ctx.Scene.W, ctx.Scene.H = vw, vh
		_, _ = vx, vy
	}
	// 5. begin debug-UI frame: the debug UI surface itself is an
	// external collaborator out of scope; nothing to do without one.

	if ctx.Device != nil {
		ctx.fuzz.step(ctx.Device) // 6. step the fuzzer.
	}

	var ev *InputEvent
	if ctx.Device != nil {
		ev = ctx.input.drain(ctx.Bus, ctx.Device, dt) // 7. drain platform input.
	}
	if ev != nil && ctx.Config.resizeCallback != nil && ev.Resized {
		ctx.Config.resizeCallback(ctx.Scene.W, ctx.Scene.H)
	}
	if ev != nil && ctx.freeCam != nil {
		ctx.freeCam.Update(ev.Down)
	}

	if ctx.Scene.control != nil {
		ctx.Scene.CharactersMove(ctx.FPS.Fine) // 8. scene_characters_move.
	}

	if ctx.Physics != nil {
		ctx.Physics.Step(ctx.FPS.Delta.Seconds()) // 9. step physics, per the FPS clock's own delta.
	}

	if ctx.Net != nil {
		ctx.Net.Poll(ctx.Bus) // 10. poll networking.
	}

	ctx.Scene.Update(ctx.elapsed()) // 11. scene_update.
	ctx.Scene.RecalcCameras()       // 12. recompute cameras.

	// 13. UI update: out of scope, no-op without a bound UI surface.

	if ctx.Config.frameCallback != nil {
		ctx.Config.frameCallback(dt) // 14. user frame_cb.
	}
	ctx.Profile.Update = time.Since(frameStart)

	renderStart := time.Now()
	if ctx.Renderer != nil {
		ctx.Renderer.FrameBegin() // 15. render the model queue...
		queue := make(render.ModelQueue, len(ctx.Scene.renderQueue))
		for i, m := range ctx.Scene.renderQueue {
			queue[i] = m
		}
		opts := render.Options{
			Bloom: ctx.Scene.Options.Bloom, SSAO: ctx.Scene.Options.SSAO,
			Fog: ctx.Scene.Options.Fog, LUT: ctx.Scene.Options.LUT,
			MSAASamples: ctx.Scene.Options.MSAASamples,
		}
		if light := ctx.Scene.Light(); light != nil {
			opts.LightX, opts.LightY, opts.LightZ = light.Location()
			opts.LightR, opts.LightG, opts.LightB = light.R, light.G, light.B
		}
		ctx.Renderer.ModelsRender(queue, opts)
		ctx.Renderer.Debug(opts) // 16. profiler/debug overlays.
		ctx.Renderer.FrameEnd()
		ctx.Profile.Renders++
	}

	if ctx.Device != nil {
		ctx.Device.SwapBuffers() // 17. swap buffers.
	}
	ctx.Profile.Render = time.Since(renderStart)

	ctx.Ring.FlushAll() // 18. close memory-accounting frame boundary.
}

// Done runs clap_done: flushes the log ring, persists settings, tears
// down subsystems, and runs every registered exit handler in order.
func (ctx *Context) Done() {
	ctx.Ring.FlushAll()
	if ctx.Settings != nil {
		ctx.Settings.Done()
	}
	if ctx.Audio != nil {
		audio.Done(ctx.Audio)
	}
	if ctx.Librarian != nil {
		ctx.Librarian.Dispose()
	}
	if ctx.Device != nil {
		ctx.Device.Dispose()
	}
	ctx.Bus.Teardown()
	for _, fn := range ctx.exitHandlers {
		fn()
	}
}
