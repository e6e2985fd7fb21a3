// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// message.go defines the tagged-union Message carried on the bus (§3,
// §4.2) plus the command-message payload used by the frame orchestrator,
// the FPS clock's per-second broadcast, and network nodes.

// Topic is the bounded set of message-bus channels.
type Topic int

const (
	TopicRender Topic = iota
	TopicInput
	TopicCommand
	TopicLog
	TopicDebugDraw
	topicCount // sentinel, not a real topic
)

func (t Topic) String() string {
	switch t {
	case TopicRender:
		return "render"
	case TopicInput:
		return "input"
	case TopicCommand:
		return "command"
	case TopicLog:
		return "log"
	case TopicDebugDraw:
		return "debug-draw"
	default:
		return "unknown"
	}
}

// SourceKind identifies where a message originated, for debugging/routing.
type SourceKind int

const (
	SourceKeyboard SourceKind = iota
	SourceMouse
	SourceGamepad
	SourceTouch
	SourceFuzzer
	SourceClient
	SourceServer
	SourceInternal
)

// Source describes the origin of a Message.
type Source struct {
	Kind  SourceKind
	Label string // human label, e.g. "client:127.0.0.1:51422"
}

// CommandFlags is the command-message bitfield from §6's wire format.
type CommandFlags struct {
	ToggleModality bool
	GlobalExit     bool
	Status         bool
	Connect        bool
	Restart        bool
	LogFollows     bool
	ToggleFuzzer   bool
	ToggleNoise    bool
	SoundReady     bool
}

// Command is the payload of a TopicCommand message.
type Command struct {
	Flags       CommandFlags
	FPS         uint32
	SysSeconds  uint32
	WorldSeconds uint32
	TimeSec     uint64
	TimeNsec    uint64
}

// LogRecord is the payload of a log_follows-tagged message, carried
// immediately after a Command in the wire format (§6).
type LogRecord struct {
	TimeSec  uint64
	TimeNsec uint64
	Module   string
	Func     string
	Line     int
	Level    Level
	Payload  string
}

// DebugDraw is one immediate-mode visualization primitive enqueued
// during scene update and consumed by the renderer once per frame.
type DebugDrawKind int

const (
	DebugLine DebugDrawKind = iota
	DebugAABB
	DebugCircle
	DebugText
	DebugGrid
)

type DebugDraw struct {
	Kind         DebugDrawKind
	A, B         [3]float64 // endpoints / min-max, depending on Kind
	Color        [4]float32
	Text         string
}

// Message is the tagged union carried on the bus. Only the field
// matching Topic is populated; the others are left zero.
type Message struct {
	Topic   Topic
	Source  *Source
	Input   *InputEvent
	Command *Command
	Log     *LogRecord
	Draw    *DebugDraw
}
