// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

// node.go implements the per-connection network node state machine
// (§4.7). Grounded on the teacher's messagebus-style "own queue, shared
// policy" collaborators (entity.go's scene back-pointer plays the same
// "owned by, not owning" role) generalized to a socket connection: each
// Node owns its outbound queue and read buffer, and reports decoded
// commands onto the shared message bus.
//
// True OS-level non-blocking sockets (epoll/kqueue) are out of scope —
// original_source has no equivalent in this corpus, and raw syscall
// polling would duplicate net.Conn's portable abstraction for no
// testable benefit. Instead each poll issues a zero-deadline read/write,
// the standard library's own non-blocking idiom, which preserves the
// spec's "polled once per frame, short reads never block" contract.
import (
	"errors"
	"io"
	stdnet "net"
	"os"
	"time"

	"github.com/onehandclap/clap"
)

// Role identifies what a Node represents in the connection topology
// (§4.7 "Roles").
type Role int

const (
	RoleListen Role = iota
	RoleServer
	RoleClient
)

// State is a Node's position in the per-connection state machine
// (§4.7 "States").
type State int

const (
	StateInit State = iota
	StateHandshake
	StateSync // reserved for future multiplayer clock sync; unused today.
	StateRunning
	StateError
)

// Node is one network connection's state (§3 "Network node").
type Node struct {
	conn stdnet.Conn
	Role Role
	State State

	ClientName string

	readBuf  []byte // raw bytes read off the wire, not yet WS-unwrapped.
	plainBuf []byte // command-message stream, post WS-unwrap if applicable.

	outbound [][]byte // FIFO of pending writes.

	websocket      bool
	handshakePending bool // true while waiting for the upgrade response to flush.

	remoteDelta time.Duration // server's clock minus the client's reported clock.

	logDir  string
	logFile *os.File

	onRestart func(cmd *clap.Command) // invoked when a running node reports restart=true.
}

// NewNode wraps conn as a Node in the given role, ready to be polled.
func NewNode(conn stdnet.Conn, role Role) *Node {
	return &Node{conn: conn, Role: role, State: StateInit}
}

// Send enqueues buf for output on the next poll (§4.7 "Outbound queue").
func (n *Node) Send(buf []byte) { n.outbound = append(n.outbound, buf) }

// Close releases the node's connection and log-capture file.
func (n *Node) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
	if n.logFile != nil {
		n.logFile.Close()
	}
}

// poll runs one frame's worth of work for the node: a non-blocking
// read, state-machine advancement, command dispatch, and a non-blocking
// flush of the outbound queue. It returns false when the node should be
// removed from its owning poll set (hangup, fin, or a previously
// latched error being swept, per §4.7's "any / hangup / fin" and §7's
// "WebSocket frame parsing errors ... transition the node to error,
// which is swept on the next poll").
func (n *Node) poll(bus *clap.Bus) bool {
	if n.State == StateError {
		return false
	}
	if n.Role == RoleClient && n.State == StateInit {
		n.sendConnect()
		n.State = StateRunning // handshake (client view): send connect, then running.
	}

	if !n.readNonBlocking() {
		return false // hangup / fin.
	}
	n.unwrapWebsocket()
	n.dispatchCommands(bus)
	n.flushOutbound()
	return n.State != StateError
}

// sendConnect enqueues the initial connect command (§4.7 "init: socket
// writable -> send connect command with client wall-clock").
func (n *Node) sendConnect() {
	now := time.Now()
	cmd := &clap.Command{
		Flags:    clap.CommandFlags{Connect: true},
		TimeSec:  uint64(now.Unix()),
		TimeNsec: uint64(now.Nanosecond()),
	}
	n.Send(clap.EncodeCommand(cmd))
}

// readNonBlocking drains whatever is currently available without
// blocking, appending it to readBuf. Returns false on hangup/EOF.
func (n *Node) readNonBlocking() bool {
	buf := make([]byte, 4096)
	n.conn.SetReadDeadline(time.Now())
	for {
		nr, err := n.conn.Read(buf)
		if nr > 0 {
			n.readBuf = append(n.readBuf, buf[:nr]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false
			}
			var ne stdnet.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return true // no more data this poll; short read, try again next frame.
			}
			return false
		}
		if nr < len(buf) {
			return true
		}
	}
}

// unwrapWebsocket detects an HTTP upgrade request on a fresh server-role
// node, replies with the handshake response, and otherwise strips
// WebSocket framing from readBuf into plainBuf (§4.7 "Framing").
func (n *Node) unwrapWebsocket() {
	if len(n.readBuf) == 0 {
		return
	}
	if n.Role == RoleServer && !n.websocket && !n.handshakePending {
		if key, ok := ParseHandshakeRequest(n.readBuf); ok {
			n.Send(BuildHandshakeResponse(key))
			n.handshakePending = true
			n.readBuf = nil
			return
		}
	}
	if !n.websocket {
		n.plainBuf = append(n.plainBuf, n.readBuf...)
		n.readBuf = nil
		return
	}
	frames, remainder := DecodeFrames(n.readBuf)
	n.readBuf = remainder
	for _, f := range frames {
		switch f.Opcode {
		case OpBinary, OpText, OpContinuation:
			n.plainBuf = append(n.plainBuf, f.Payload...)
		case OpClose:
			n.State = StateError
		}
	}
}

// dispatchCommands decodes every complete command-message (and any
// attached log-record) off plainBuf, advancing the state machine and
// publishing to bus (§4.7 "Per-connection state machine").
func (n *Node) dispatchCommands(bus *clap.Bus) {
	for {
		cmd, used, err := clap.DecodeCommand(n.plainBuf)
		if err != nil {
			return // short read: cache partial data, return without advancing.
		}
		n.plainBuf = n.plainBuf[used:]

		var rec *clap.LogRecord
		if cmd.Flags.LogFollows {
			r, used2, err := clap.DecodeLogRecord(n.plainBuf)
			if err != nil {
				// Not enough buffered yet for the attached record; put the
				// command bytes back and wait for the rest to arrive.
				n.plainBuf = append(clap.EncodeCommand(cmd), n.plainBuf...)
				return
			}
			n.plainBuf = n.plainBuf[used2:]
			rec = r
		}

		n.advance(bus, cmd, rec)
	}
}

func (n *Node) advance(bus *clap.Bus, cmd *clap.Command, rec *clap.LogRecord) {
	switch n.State {
	case StateInit, StateHandshake:
		if !cmd.Flags.Connect {
			return
		}
		remote := time.Unix(int64(cmd.TimeSec), int64(cmd.TimeNsec))
		n.remoteDelta = time.Since(remote)
		if f, err := openLogCapture(n.logDir, n.ClientName, time.Now()); err == nil {
			n.logFile = f
		}
		n.State = StateRunning
	case StateRunning:
		kind := clap.SourceClient
		if n.Role == RoleServer {
			kind = clap.SourceServer
		}
		bus.Send(&clap.Message{
			Topic:   clap.TopicCommand,
			Source:  &clap.Source{Kind: kind, Label: n.ClientName},
			Command: cmd,
		})
		if cmd.Flags.Restart && n.onRestart != nil {
			n.onRestart(cmd)
		}
		if rec != nil {
			writeLogCapture(n.logFile, rec)
		}
	}
}

// flushOutbound dequeues and writes as much of the pending output as
// the socket accepts without blocking (§4.7 "Outbound queue"). Partial
// sends are re-queued. Completing the handshake response on a
// server-role node latches its websocket bit and clears the pending flag.
func (n *Node) flushOutbound() {
	for len(n.outbound) > 0 {
		buf := n.outbound[0]
		n.conn.SetWriteDeadline(time.Now().Add(10 * time.Millisecond))
		written, err := n.conn.Write(buf)
		if written == len(buf) {
			n.outbound = n.outbound[1:]
			if n.handshakePending {
				n.websocket = true
				n.handshakePending = false
			}
			continue
		}
		if written > 0 {
			n.outbound[0] = buf[written:]
		}
		if err != nil {
			return // try the remainder again next poll.
		}
	}
}
