// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

// server.go implements the headless server's poll set (§4.7 "Poll/
// wakeup"). Grounded on original_source/core/networking.c's
// need_polling_alloc dirty flag: rather than rebuild an OS poll set
// every frame, the server only marks itself dirty on add/remove and a
// real epoll/kqueue binding (out of scope here, see node.go's doc
// comment) would consult the flag before reallocating its descriptor
// table. ClientPollTimeout/ServerPollTimeout expose the spec's "0 on client, 100 ms on
// headless server" distinction for a caller driving its own select loop.

import (
	stdnet "net"
	"time"

	"github.com/onehandclap/clap"
)

// ClientPollTimeout and ServerPollTimeout are the maximum time a single
// poll may block: 0 for a
// client node (never blocks), 100ms for a headless server (§4.7
// "Poll/wakeup").
const (
	ClientPollTimeout = 0
	ServerPollTimeout = 100 * time.Millisecond
)

// Server accepts client connections and polls every active Node once
// per frame. It implements clap's NetPoller (Poll(bus *clap.Bus)), so a
// Context can drive it directly from the frame orchestrator's step 10.
type Server struct {
	listener stdnet.Listener
	nodes    []*Node
	accepted chan stdnet.Conn

	logDir    string
	onRestart func(cmd *clap.Command)

	needPollingAlloc bool // set on any add/remove; a real poll-set binding would consult this.
}

// NewServer starts listening on addr and returns a Server ready to be
// polled once per frame.
func NewServer(addr, logDir string) (*Server, error) {
	l, err := stdnet.Listen("tcp", addr)
	if err != nil {
		return nil, clap.Wrap(clap.SocketError, "net: listen failed", err)
	}
	s := &Server{listener: l, accepted: make(chan stdnet.Conn, 16), logDir: logDir}
	go s.acceptLoop()
	return s, nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			close(s.accepted)
			return
		}
		s.accepted <- conn
	}
}

// OnRestart installs the handler invoked whenever a running node
// reports a restart command, typically Server.Broadcast forwarding it
// to every other peer (§4.7 "if restart, broadcast to peers").
func (s *Server) OnRestart(fn func(cmd *clap.Command)) { s.onRestart = fn }

// Poll drains newly-accepted connections, polls every active node, and
// drops any that hung up or latched an error (§4.7 "any / hangup / fin").
func (s *Server) Poll(bus *clap.Bus) {
	s.acceptPending()
	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := s.nodes[i]
		if !n.poll(bus) {
			n.Close()
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			s.needPollingAlloc = true
		}
	}
}

func (s *Server) acceptPending() {
	for {
		select {
		case conn, ok := <-s.accepted:
			if !ok {
				return
			}
			n := NewNode(conn, RoleServer)
			n.logDir = s.logDir
			n.onRestart = s.onRestart
			s.nodes = append(s.nodes, n)
			s.needPollingAlloc = true
		default:
			return
		}
	}
}

// Broadcast enqueues buf for every currently-running node, matching
// §4.7's "if restart, broadcast to peers."
func (s *Server) Broadcast(buf []byte) {
	for _, n := range s.nodes {
		if n.State == StateRunning {
			n.Send(buf)
		}
	}
}

// NodeCount reports the number of currently tracked connections.
func (s *Server) NodeCount() int { return len(s.nodes) }

// Close stops accepting new connections and closes every tracked node.
func (s *Server) Close() {
	s.listener.Close()
	for _, n := range s.nodes {
		n.Close()
	}
	s.nodes = nil
}

// Client wraps a single outbound connection as a Node in the client
// role, used by the game side to talk to a headless server.
type Client struct {
	node *Node
}

// NewClient dials addr and returns a Client ready to be polled once per
// frame (client poll timeout is always 0, per §4.7).
func NewClient(addr string) (*Client, error) {
	conn, err := stdnet.Dial("tcp", addr)
	if err != nil {
		return nil, clap.Wrap(clap.SocketError, "net: dial failed", err)
	}
	return &Client{node: NewNode(conn, RoleClient)}, nil
}

// Poll drives the client's single node, satisfying clap's NetPoller.
func (c *Client) Poll(bus *clap.Bus) {
	if !c.node.poll(bus) {
		c.node.Close()
	}
}

// Send enqueues a command for delivery to the server on the next poll,
// for example a log_follows frame built with clap.EncodeLogFollows.
func (c *Client) Send(buf []byte) { c.node.Send(buf) }

// Close tears down the client connection.
func (c *Client) Close() { c.node.Close() }
