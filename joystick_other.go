// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

//go:build !linux

package clap

// joystick_other.go is the fallback source for platforms without a
// native joystick binding in this module. An empty joystick array is a
// valid configuration (§4.10 describes the model, not a mandate that
// every platform implement it); browser/WASM builds are expected to
// wire the Gamepad API through platform_input_init instead.
func scanJoystickSources(claimed map[string]bool) []joystickSource { return nil }
