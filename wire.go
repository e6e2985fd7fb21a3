// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// wire.go implements the intra-protocol command-message / log-record
// codec from §6. The source keeps these fields native-endian in-process
// and relies on same-endian peers; per the Design Notes' explicit
// "Endianness / wire format" guidance, crossing a network connection
// requires an explicit codec, so this always encodes little-endian
// regardless of host architecture.

import (
	"encoding/binary"
)

const commandMessageSize = 4 + 4 + 4 + 4 + 8 + 8 // bitfield + fps + sys_seconds + world_seconds + timespec

func encodeFlags(f CommandFlags) uint32 {
	var b uint32
	set := func(bit uint, v bool) {
		if v {
			b |= 1 << bit
		}
	}
	set(0, f.ToggleModality)
	set(1, f.GlobalExit)
	set(2, f.Status)
	set(3, f.Connect)
	set(4, f.Restart)
	set(5, f.LogFollows)
	set(6, f.ToggleFuzzer)
	set(7, f.ToggleNoise)
	set(8, f.SoundReady)
	return b
}

func decodeFlags(b uint32) CommandFlags {
	bit := func(n uint) bool { return b&(1<<n) != 0 }
	return CommandFlags{
		ToggleModality: bit(0),
		GlobalExit:     bit(1),
		Status:         bit(2),
		Connect:        bit(3),
		Restart:        bit(4),
		LogFollows:     bit(5),
		ToggleFuzzer:   bit(6),
		ToggleNoise:    bit(7),
		SoundReady:     bit(8),
	}
}

// EncodeCommand serializes a Command to its fixed 32-byte wire form.
func EncodeCommand(cmd *Command) []byte {
	buf := make([]byte, commandMessageSize)
	binary.LittleEndian.PutUint32(buf[0:], encodeFlags(cmd.Flags))
	binary.LittleEndian.PutUint32(buf[4:], cmd.FPS)
	binary.LittleEndian.PutUint32(buf[8:], cmd.SysSeconds)
	binary.LittleEndian.PutUint32(buf[12:], cmd.WorldSeconds)
	binary.LittleEndian.PutUint64(buf[16:], cmd.TimeSec)
	binary.LittleEndian.PutUint64(buf[24:], cmd.TimeNsec)
	return buf
}

// DecodeCommand parses a command-message from the front of buf, returning
// the decoded Command and the number of bytes consumed. BufferIncomplete
// is returned if buf is shorter than one full command-message.
func DecodeCommand(buf []byte) (*Command, int, error) {
	if len(buf) < commandMessageSize {
		return nil, 0, New(BufferIncomplete, "wire: short command-message")
	}
	cmd := &Command{
		Flags:        decodeFlags(binary.LittleEndian.Uint32(buf[0:])),
		FPS:          binary.LittleEndian.Uint32(buf[4:]),
		SysSeconds:   binary.LittleEndian.Uint32(buf[8:]),
		WorldSeconds: binary.LittleEndian.Uint32(buf[12:]),
		TimeSec:      binary.LittleEndian.Uint64(buf[16:]),
		TimeNsec:     binary.LittleEndian.Uint64(buf[24:]),
	}
	return cmd, commandMessageSize, nil
}

// EncodeLogRecord serializes a log-record: a 16-byte timespec, a u32
// length (including the terminating NUL), then the NUL-terminated payload.
func EncodeLogRecord(rec *LogRecord) []byte {
	payload := append([]byte(rec.Payload), 0)
	buf := make([]byte, 8+8+4+len(payload))
	binary.LittleEndian.PutUint64(buf[0:], rec.TimeSec)
	binary.LittleEndian.PutUint64(buf[8:], rec.TimeNsec)
	binary.LittleEndian.PutUint32(buf[16:], uint32(len(payload)))
	copy(buf[20:], payload)
	return buf
}

// DecodeLogRecord parses a log-record from the front of buf, returning
// the record and bytes consumed.
func DecodeLogRecord(buf []byte) (*LogRecord, int, error) {
	if len(buf) < 20 {
		return nil, 0, New(BufferIncomplete, "wire: short log-record header")
	}
	sec := binary.LittleEndian.Uint64(buf[0:])
	nsec := binary.LittleEndian.Uint64(buf[8:])
	length := binary.LittleEndian.Uint32(buf[16:])
	total := 20 + int(length)
	if len(buf) < total {
		return nil, 0, New(BufferIncomplete, "wire: short log-record payload")
	}
	payload := buf[20 : total-1] // drop the terminating NUL.
	return &LogRecord{TimeSec: sec, TimeNsec: nsec, Payload: string(payload)}, total, nil
}

// EncodeLogFollows encodes a command-message with LogFollows set
// immediately followed by its log-record in one contiguous buffer,
// matching original_source/core/networking.c's log_flush which builds
// both in a single allocation rather than two independent sends.
func EncodeLogFollows(cmd *Command, rec *LogRecord) []byte {
	cmd.Flags.LogFollows = true
	out := EncodeCommand(cmd)
	out = append(out, EncodeLogRecord(rec)...)
	return out
}
