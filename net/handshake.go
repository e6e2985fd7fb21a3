// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

// handshake.go implements the WebSocket upgrade handshake (§4.7, §8
// scenario 3): accept the client's Sec-WebSocket-Key, concatenate the
// fixed RFC 6455 GUID, hash with SHA-1, base64-encode, and reply with
// the standard "HTTP/1.1 101 Switching Protocols" response.

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/textproto"
	"strings"
)

// websocketGUID is the fixed magic string RFC 6455 §1.3 defines for
// computing Sec-WebSocket-Accept.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// Accept computes the Sec-WebSocket-Accept value for the given
// Sec-WebSocket-Key (§8 scenario 3: key "dGhlIHNhbXBsZSBub25jZQ==" must
// produce accept "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=").
func Accept(key string) string {
	h := sha1.New()
	h.Write([]byte(key))
	h.Write([]byte(websocketGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ParseHandshakeRequest extracts the Sec-WebSocket-Key header from a
// literal HTTP upgrade request. ok is false if req is not a well-formed
// websocket upgrade request.
func ParseHandshakeRequest(req []byte) (key string, ok bool) {
	reader := textproto.NewReader(bufio.NewReader(bytes.NewReader(req)))
	requestLine, err := reader.ReadLine()
	if err != nil || !strings.HasPrefix(requestLine, "GET ") {
		return "", false
	}
	header, err := reader.ReadMIMEHeader()
	if err != nil && len(header) == 0 {
		return "", false
	}
	if !strings.EqualFold(header.Get("Upgrade"), "websocket") {
		return "", false
	}
	key = header.Get("Sec-WebSocket-Key")
	if key == "" {
		return "", false
	}
	return key, true
}

// BuildHandshakeResponse builds the literal "101 Switching Protocols"
// reply for the given client key.
func BuildHandshakeResponse(key string) []byte {
	accept := Accept(key)
	resp := fmt.Sprintf(
		"HTTP/1.1 101 Switching Protocols\r\n"+
			"Upgrade: websocket\r\n"+
			"Connection: Upgrade\r\n"+
			"Sec-WebSocket-Accept: %s\r\n\r\n", accept)
	return []byte(resp)
}

// BuildHandshakeRequest builds the literal upgrade request a client
// node sends when connecting to a server that may require WebSocket
// framing.
func BuildHandshakeRequest(host, key string) []byte {
	req := fmt.Sprintf(
		"GET / HTTP/1.1\r\n"+
			"Host: %s\r\n"+
			"Upgrade: websocket\r\n"+
			"Connection: Upgrade\r\n"+
			"Sec-WebSocket-Key: %s\r\n"+
			"Sec-WebSocket-Version: 13\r\n\r\n", host, key)
	return []byte(req)
}
