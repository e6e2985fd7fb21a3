// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

import (
	"bytes"
	"testing"
)

func TestFrameRoundTripShortPayload(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 125)
	enc := EncodeFrame(payload)
	if len(enc) != 2+len(payload) {
		t.Fatalf("header len = %d, want 2 bytes of header", len(enc)-len(payload))
	}
	frame, n, ok := DecodeFrame(enc)
	if !ok {
		t.Fatalf("DecodeFrame: short read on a complete frame")
	}
	if n != len(enc) {
		t.Fatalf("consumed %d bytes, want %d", n, len(enc))
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestFrameRoundTripMediumPayload(t *testing.T) {
	payload := bytes.Repeat([]byte{0x7A}, 300)
	enc := EncodeFrame(payload)
	if len(enc) != 2+2+len(payload) {
		t.Fatalf("header len = %d, want 4 bytes of header", len(enc)-len(payload))
	}
	frame, n, ok := DecodeFrame(enc)
	if !ok || n != len(enc) {
		t.Fatalf("DecodeFrame failed: n=%d ok=%v", n, ok)
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestFrameRoundTripLargePayload(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 70000)
	enc := EncodeFrame(payload)
	if len(enc) != 2+8+len(payload) {
		t.Fatalf("header len = %d, want 10 bytes of header", len(enc)-len(payload))
	}
	frame, n, ok := DecodeFrame(enc)
	if !ok || n != len(enc) {
		t.Fatalf("DecodeFrame failed: n=%d ok=%v", n, ok)
	}
	if !bytes.Equal(frame.Payload, payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestFrameSplitAcrossTwoReadsYieldsSameResult(t *testing.T) {
	payload := bytes.Repeat([]byte{0x5C}, 500)
	enc := EncodeFrame(payload)

	split := len(enc) / 3
	first, second := enc[:split], enc[split:]

	var buf []byte
	buf = append(buf, first...)
	frames, remainder := DecodeFrames(buf)
	if len(frames) != 0 {
		t.Fatalf("got %d spurious frames from a partial buffer, want 0", len(frames))
	}
	if !bytes.Equal(remainder, buf) {
		t.Fatalf("partial buffer was consumed before it was complete")
	}

	buf = append(remainder, second...)
	frames, remainder = DecodeFrames(buf)
	if len(frames) != 1 {
		t.Fatalf("got %d frames after the full buffer arrived, want 1", len(frames))
	}
	if !bytes.Equal(frames[0].Payload, payload) {
		t.Fatalf("payload mismatch after split read")
	}
	if len(remainder) != 0 {
		t.Fatalf("remainder = %d bytes, want 0", len(remainder))
	}
}

func TestFrameDecodeIncompleteReturnsNotOK(t *testing.T) {
	payload := []byte("hello")
	enc := EncodeFrame(payload)
	_, _, ok := DecodeFrame(enc[:len(enc)-1])
	if ok {
		t.Fatalf("DecodeFrame succeeded on a truncated frame")
	}
}
