// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

//go:build linux

package clap

// joystick_linux.go scans /dev/input/jsN and reads the kernel joystick
// API's struct js_event (8 bytes: u32 time, s16 value, u8 type, u8
// number) via golang.org/x/sys/unix, grounded on the teacher's sys_unix.go
// pattern of wrapping raw unix syscalls with a thin Go layer rather than
// cgo.

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80 // ORed onto type for the synthetic startup-state events.
)

// linuxJoystick reads one open joystick device file.
type linuxJoystick struct {
	path    string
	fd      int
	axes    [joystickMaxAxes]float64
	buttons uint32
}

func openLinuxJoystick(path string) (*linuxJoystick, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return &linuxJoystick{path: path, fd: fd}, nil
}

func (j *linuxJoystick) id() string { return j.path }

// poll drains any pending js_event records, folding them into the
// running axis/button state, and reports it. A device that no longer
// responds (unplugged) reports ok=false.
func (j *linuxJoystick) poll() (axes [joystickMaxAxes]float64, buttons uint32, ok bool) {
	buf := make([]byte, 8)
	for {
		n, err := unix.Read(j.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				break
			}
			return j.axes, j.buttons, false
		}
		if n < 8 {
			break
		}
		value := int16(binary.LittleEndian.Uint16(buf[4:6]))
		typ := buf[6] &^ jsEventInit
		num := buf[7]
		switch typ {
		case jsEventAxis:
			if int(num) < joystickMaxAxes {
				j.axes[num] = float64(value) / 32767.0
			}
		case jsEventButton:
			if num < joystickMaxButtons {
				if value != 0 {
					j.buttons |= 1 << num
				} else {
					j.buttons &^= 1 << num
				}
			}
		}
	}
	return j.axes, j.buttons, true
}

func (j *linuxJoystick) close() { unix.Close(j.fd) }

// scanJoystickSources probes /dev/input/js0..js(N-1) for devices not
// already claimed by an attached slot. Errors opening a given path are
// expected (no device attached) and silently skipped.
func scanJoystickSources(claimed map[string]bool) []joystickSource {
	var found []joystickSource
	for i := 0; i < joystickMaxSlots; i++ {
		path := fmt.Sprintf("/dev/input/js%d", i)
		if claimed[path] {
			continue
		}
		js, err := openLinuxJoystick(path)
		if err != nil {
			continue
		}
		found = append(found, js)
	}
	return found
}
