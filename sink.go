// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// sink.go provides the two concrete Sink flavors named in §4.3, backed
// by logrus the way r3e-network-service_layer/pkg/logger/logger.go backs
// its own Logger wrapper: a *logrus.Logger formats and routes, our code
// only decides what gets sent to it and when.

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoggingConfig configures the default stdio sink built by clap_init.
type LoggingConfig struct {
	Level  string // trace|debug|info|warn|error|fatal
	Format string // "json" or anything else for text
	Output string // "stdout" or "file"
	FilePrefix string
}

func (c LoggingConfig) level() Level {
	switch strings.ToLower(c.Level) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// NewStdioSink builds a Sink that routes level >= warn to stderr and
// everything else to stdout, exactly as §4.3 specifies, using a logrus
// logger per output stream so formatting stays consistent with the rest
// of the stack.
func NewStdioSink(cfg LoggingConfig) *Sink {
	out := newLogrusLogger(cfg, os.Stdout)
	errOut := newLogrusLogger(cfg, os.Stderr)

	return &Sink{
		FilterLevel:   cfg.level(),
		FillThreshold: 1, // stdio flushes eagerly; it's meant to be read live.
		Flush: func(e *LogEntry) {
			logger := out
			if e.Level >= LevelWarn {
				logger = errOut
			}
			entry := logger.WithFields(logrus.Fields{
				"module": shortModule(e.Module),
				"func":   e.Func,
				"line":   e.Line,
			})
			switch e.Level {
			case LevelTrace:
				entry.Trace(e.Payload)
			case LevelDebug:
				entry.Debug(e.Payload)
			case LevelWarn:
				entry.Warn(e.Payload)
			case LevelError:
				entry.Error(e.Payload)
			case LevelFatal:
				entry.Error(e.Payload) // never call logrus.Fatal: it calls os.Exit, the core decides shutdown.
			default:
				entry.Info(e.Payload)
			}
		},
	}
}

func newLogrusLogger(cfg LoggingConfig, fallback *os.File) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(toLogrusLevel(cfg.level()))
	if strings.ToLower(cfg.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if strings.ToLower(cfg.Output) == "file" {
		prefix := cfg.FilePrefix
		if prefix == "" {
			prefix = "clap"
		}
		if err := os.MkdirAll("logs", 0o755); err == nil {
			path := filepath.Join("logs", prefix+".log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				l.SetOutput(f)
				return l
			}
		}
	}
	l.SetOutput(fallback)
	return l
}

func toLogrusLevel(lv Level) logrus.Level {
	switch lv {
	case LevelTrace:
		return logrus.TraceLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError, LevelFatal:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func shortModule(mod string) string {
	if i := strings.LastIndexByte(mod, '/'); i >= 0 {
		return mod[i+1:]
	}
	return mod
}

// NewNetworkSink converts each flushed entry into a LogRecord and hands
// it to enqueue, for shipping a client's logs to the headless server
// (§4.3). Framing the record as a log_follows command message and
// queueing it on a network node is left to enqueue.
func NewNetworkSink(filterLevel Level, enqueue func(rec *LogRecord)) *Sink {
	return &Sink{
		FilterLevel:   filterLevel,
		FillThreshold: 8,
		Flush: func(e *LogEntry) {
			enqueue(&LogRecord{
				TimeSec:  uint64(e.Time.Unix()),
				TimeNsec: uint64(e.Time.Nanosecond()),
				Module:   shortModule(e.Module),
				Func:     e.Func,
				Line:     e.Line,
				Level:    e.Level,
				Payload:  e.Payload,
			})
		},
	}
}
