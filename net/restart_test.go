// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

import (
	"testing"
	"time"

	"github.com/onehandclap/clap"
)

// pollUntil retries fn, sleeping briefly between attempts, until it
// reports true or the attempt budget is exhausted.
func pollUntil(t *testing.T, attempts int, fn func() bool) bool {
	t.Helper()
	for i := 0; i < attempts; i++ {
		if fn() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// TestRestartBroadcastReachesClient exercises §8 scenario 4's network
// half: a client connects to a server, the server broadcasts a restart
// command, and the client's message bus observes exactly one command
// with restart=1. Re-exec itself on receipt of that command is
// Context's responsibility (context.go), not retested here since it
// calls os.Exit on success.
func TestRestartBroadcastReachesClient(t *testing.T) {
	server, err := NewServer("127.0.0.1:0", t.TempDir())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()
	addr := server.listener.Addr().String()

	client, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	serverBus := clap.NewBus()
	clientBus := clap.NewBus()

	// Drive both sides until the server has accepted the connection and
	// completed the connect handshake (its node reaches StateRunning).
	if !pollUntil(t, 100, func() bool {
		client.Poll(clientBus)
		server.Poll(serverBus)
		return len(server.nodes) == 1 && server.nodes[0].State == StateRunning
	}) {
		t.Fatalf("server node never reached StateRunning")
	}

	server.Broadcast(clap.EncodeCommand(&clap.Command{Flags: clap.CommandFlags{Restart: true}}))

	var restarts int
	clientBus.Subscribe(clap.TopicCommand, func(msg *clap.Message, data any) clap.Propagation {
		if msg.Command != nil && msg.Command.Flags.Restart {
			restarts++
		}
		return clap.Continue
	}, "counter")

	if !pollUntil(t, 100, func() bool {
		server.Poll(serverBus)
		client.Poll(clientBus)
		return restarts > 0
	}) {
		t.Fatalf("client never observed the broadcast restart command")
	}
	if restarts != 1 {
		t.Fatalf("restarts = %d, want exactly 1", restarts)
	}
}
