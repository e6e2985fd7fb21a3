// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

import (
	"bytes"
	"strings"
	"testing"
)

func TestAcceptMatchesRFC6455SampleVector(t *testing.T) {
	got := Accept("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Fatalf("Accept() = %q, want %q", got, want)
	}
}

func TestParseHandshakeRequestExtractsKey(t *testing.T) {
	req := BuildHandshakeRequest("example.com", "dGhlIHNhbXBsZSBub25jZQ==")
	key, ok := ParseHandshakeRequest(req)
	if !ok {
		t.Fatalf("ParseHandshakeRequest failed on a well-formed request")
	}
	if key != "dGhlIHNhbXBsZSBub25jZQ==" {
		t.Fatalf("key = %q, want %q", key, "dGhlIHNhbXBsZSBub25jZQ==")
	}
}

func TestParseHandshakeRequestRejectsNonUpgrade(t *testing.T) {
	req := []byte("GET / HTTP/1.1\r\nHost: example.com\r\n\r\n")
	_, ok := ParseHandshakeRequest(req)
	if ok {
		t.Fatalf("ParseHandshakeRequest accepted a request with no Upgrade header")
	}
}

func TestBuildHandshakeResponseContainsExpectedAccept(t *testing.T) {
	resp := BuildHandshakeResponse("dGhlIHNhbXBsZSBub25jZQ==")
	if !bytes.Contains(resp, []byte("101 Switching Protocols")) {
		t.Fatalf("response missing 101 status line: %q", resp)
	}
	if !strings.Contains(string(resp), "Sec-WebSocket-Accept: s3pPLMBiTxaQ9kYGzzhZRbK+xOo=") {
		t.Fatalf("response missing expected accept header: %q", resp)
	}
}

func TestEndToEndHandshakeRoundTrip(t *testing.T) {
	key := "dGhlIHNhbXBsZSBub25jZQ=="
	req := BuildHandshakeRequest("localhost:9000", key)
	parsedKey, ok := ParseHandshakeRequest(req)
	if !ok {
		t.Fatalf("server failed to parse client's handshake request")
	}
	resp := BuildHandshakeResponse(parsedKey)
	if !strings.Contains(string(resp), "Sec-WebSocket-Accept: s3pPLMBiTxaQ9kYGzzhZRbK+xOo=") {
		t.Fatalf("round-tripped handshake produced wrong accept value: %q", resp)
	}
}
