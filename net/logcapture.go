// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package net

// logcapture.go implements the per-client log-capture file (§4.7
// "Log-capture file"): on client connect, the server opens
// clap-<client-name>-<date>_<time>.<ns> and writes each log_follows
// record as "[sec.nsec] <payload>".

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/onehandclap/clap"
)

// logCaptureName builds the capture filename for a newly-handshaken
// client, sampled at now.
func logCaptureName(clientName string, now time.Time) string {
	return fmt.Sprintf("clap-%s-%s.%d", clientName, now.Format("20060102_150405"), now.Nanosecond())
}

// openLogCapture creates the capture file for clientName under dir.
func openLogCapture(dir, clientName string, now time.Time) (*os.File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, clap.Wrap(clap.InitializationFailed, "logcapture: mkdir failed", err)
	}
	path := filepath.Join(dir, logCaptureName(clientName, now))
	f, err := os.Create(path)
	if err != nil {
		return nil, clap.Wrap(clap.InitializationFailed, "logcapture: create failed", err)
	}
	return f, nil
}

// writeLogCapture appends one record line, matching the spec's literal
// "[sec.nsec] <payload>" format.
func writeLogCapture(f *os.File, rec *clap.LogRecord) error {
	if f == nil {
		return nil
	}
	_, err := fmt.Fprintf(f, "[%d.%09d] %s\n", rec.TimeSec, rec.TimeNsec, rec.Payload)
	return err
}
