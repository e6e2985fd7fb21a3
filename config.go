// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// config.go reduces the Context constructor's API footprint using
// functional options, exactly as the teacher's own config.go does.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
//      https://commandcenter.blogspot.ca/2014/01/self-referential-functions-and-design.html

// ConfigFlags is the bit-flag group named in §6's clap_config.
type ConfigFlags uint32

const (
	FlagDebug ConfigFlags = 1 << iota
	FlagQuiet
	FlagInput
	FlagFont
	FlagSound
	FlagPhys
	FlagGraphics
	FlagUI
	FlagSettings
)

// Has reports whether every bit in want is set in f.
func (f ConfigFlags) Has(want ConfigFlags) bool { return f&want == want }

// Config contains configuration attributes that can be set by the game
// before running the engine's frame orchestrator (§6 "Configuration").
type Config struct {
	Flags ConfigFlags

	// attributes for windowed games
	title    string // window title
	windowed bool   // true to run in windowed mode.
	x, y     int32  // display top left corner in pixels
	w, h     int32  // display width and height in pixels

	// display default background color
	r, g, b, a float32 // red, green, blue, alpha: range 0-1

	baseURL         string
	defaultFontName string
	lutPresets      []string

	frameCallback    func(dt float64)
	resizeCallback   func(w, h int)
	settingsCallback func(s *Settings)
	callbackData     any

	logging       LoggingConfig
	exitAfterSecs int
	appName       string
	randomSeed    int64

	fov, near, far float64 // default perspective camera frustum.
}

// configDefaults provides reasonable defaults so the game
// runs even if no configuration attributes are set.
var configDefaults = Config{
	Flags:    FlagInput | FlagGraphics,
	title:    "clap", // default title
	windowed: false,  // default full screen.
	x:        0,      // top left corner
	y:        0,      // top left corner
	w:        800,    // default 16:9 ratio
	h:        450,    // default 16:9 ratio
	r:        0.0,    // default black
	g:        0.0,    // default black
	b:        0.0,    // default black
	a:        1.0,    // default opaque
	baseURL:  ".",
	appName:  "clap",
	logging:  LoggingConfig{Level: "info", Format: "text", Output: "stdout"},
	fov:      70.0,
	near:     0.1,
	far:      1000.0,
}

// Attr defines optional application attributes that can be used to
// configure the engine.
//
//	ctx, err := clap.NewContext(
//	   clap.Title("Keyboard Controller"),
//	   clap.Size(200, 200, 900, 400),
//	   clap.Background(0.45, 0.45, 0.45, 1.0),
//	)
type Attr func(*Config) // type for attribute overrides

// Title sets the window title when using windowed mode.
// For use in NewContext().
func Title(t string) Attr {
	return func(c *Config) { c.title = t }
}

// Size sets the window top left corner location
// and size in pixels when using windowed mode.
func Size(x, y, w, h int32) Attr {
	// FUTURE: revisit the upper bounds.
	return func(c *Config) {
		// limit to reasonable locations.
		if x >= 0 && x < 10_000 {
			c.x = x
		}
		if y >= 0 && y < 10_000 {
			c.y = y
		}

		// limit to resonable sizes.
		if w > 10 && w < 10_000 {
			c.w = w
		}
		if h > 10 && h < 10_000 {
			c.h = h
		}
	}
}

// Windowed mode instead of fullscreen.
func Windowed() Attr {
	return func(c *Config) { c.windowed = true }
}

// Background display clear color.
func Background(r, g, b, a float32) Attr {
	return func(c *Config) { c.r = r; c.g = g; c.b = b; c.a = a }
}

// BaseURL sets the root used to construct librarian URIs (§4.4).
func BaseURL(url string) Attr { return func(c *Config) { c.baseURL = url } }

// DefaultFontName sets the default UI font path.
func DefaultFontName(name string) Attr { return func(c *Config) { c.defaultFontName = name } }

// LUTPresets sets the color-grading LUT names to bake at init.
func LUTPresets(names ...string) Attr { return func(c *Config) { c.lutPresets = names } }

// FrameCallback sets the demo-supplied per-frame hook (§4.9 step 14).
func FrameCallback(cb func(dt float64)) Attr {
	return func(c *Config) { c.frameCallback = cb }
}

// ResizeCallback sets the demo-supplied resize hook.
func ResizeCallback(cb func(w, h int)) Attr {
	return func(c *Config) { c.resizeCallback = cb }
}

// SettingsCallback is invoked once persisted settings finish loading.
func SettingsCallback(cb func(s *Settings)) Attr {
	return func(c *Config) { c.settingsCallback = cb }
}

// CallbackData attaches opaque demo data retrievable from callbacks.
func CallbackData(data any) Attr { return func(c *Config) { c.callbackData = data } }

// WithFlags ORs additional bit flags into the config (§6 clap_config).
func WithFlags(flags ConfigFlags) Attr {
	return func(c *Config) { c.Flags |= flags }
}

// Logging overrides the default sink configuration built by NewContext.
func Logging(cfg LoggingConfig) Attr {
	return func(c *Config) { c.logging = cfg }
}

// ExitAfter arms the "exit-after N seconds" cancellation contract (§5):
// the countdown decrements on each status message and requests exit
// when it reaches zero.
func ExitAfter(seconds int) Attr {
	return func(c *Config) { c.exitAfterSecs = seconds }
}

// AppName sets the name used to derive the default settings file path
// and per-client log capture filenames.
func AppName(name string) Attr {
	return func(c *Config) { c.appName = name }
}

// RandomSeed seeds the fuzzer's random generator. Zero means "use a
// time-derived seed" (the fuzzer's default).
func RandomSeed(seed int64) Attr {
	return func(c *Config) { c.randomSeed = seed }
}

// Perspective overrides the default camera's field of view (degrees) and
// near/far clip planes used to seed the scene's default camera in
// NewContext.
func Perspective(fovDegrees, near, far float64) Attr {
	return func(c *Config) { c.fov = fovDegrees; c.near = near; c.far = far }
}
