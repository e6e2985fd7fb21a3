// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// settings.go implements the persistent key-value settings document
// (§6 "Persistent settings"), backed by gopkg.in/yaml.v3 — the teacher's
// go.mod already required it (originally for now-removed shader/asset
// metadata); here it is repurposed for the one remaining document the
// core actually owns. original_source/core/settings.c supplements
// plain get/set with a find-or-create "find_get" accessor (§C.5).

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsKind tags the expected type of a find_get upsert.
type SettingsKind int

const (
	SettingsNum SettingsKind = iota
	SettingsBool
	SettingsStr
)

// Settings is the nested key/value document. Values are stored as
// plain Go types (float64, bool, string, or map[string]any for nesting)
// so they round-trip through yaml.v3 without custom marshalers.
type Settings struct {
	path     string
	doc      map[string]any
	onReady  func(s *Settings)
	syncFlag bool // browser builds: true once a virtual-FS sync flush is needed.
}

// NewSettings creates a Settings document rooted at path (a file on
// desktop, a virtual-FS path on browser builds).
func NewSettings(path string) *Settings {
	return &Settings{path: path, doc: map[string]any{}}
}

// DefaultSettingsPath returns the per-user writable location for the
// settings document, matching §6 "File lives in the per-user state path".
func DefaultSettingsPath(appName string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appName, "settings.yaml")
}

// Init loads the document from disk if present (a missing file is not
// an error — it means first run) and invokes onReady synchronously on
// the desktop backend. Browser builds would invoke onReady once the
// underlying indexed-DB read completes; this implementation treats
// Init as always-synchronous since there's one real backend here.
func (s *Settings) Init(onReady func(s *Settings)) error {
	s.onReady = onReady
	data, err := os.ReadFile(s.path)
	if err == nil {
		var doc map[string]any
		if uerr := yaml.Unmarshal(data, &doc); uerr != nil {
			return Wrap(ParseFailed, "settings: parse failed", uerr)
		}
		s.doc = doc
	} else if !os.IsNotExist(err) {
		return Wrap(NotFound, "settings: read failed", err)
	}
	if s.onReady != nil {
		s.onReady(s)
	}
	return nil
}

// Done flushes any unsaved changes and releases the document.
func (s *Settings) Done() error { return s.Flush() }

// Flush persists the document to its backing path, creating parent
// directories as needed. On a browser build this is where the explicit
// indexed-DB sync would be requested (§6); syncFlag records that intent
// here so a host binding can hook it without changing this API.
func (s *Settings) Flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return Wrap(InitializationFailed, "settings: mkdir failed", err)
	}
	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return Wrap(ParseFailed, "settings: marshal failed", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return Wrap(InitializationFailed, "settings: write failed", err)
	}
	s.syncFlag = true
	return nil
}

func group(doc map[string]any, path []string) map[string]any {
	cur := doc
	for _, p := range path {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	return cur
}

// GetNum/SetNum, GetBool/SetBool, GetStr/SetStr address a dotted key
// path like "video.fullscreen".

func (s *Settings) GetNum(key string) (float64, bool) {
	v, ok := s.get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true // whole numbers read back from YAML.
	}
	return 0, false
}

func (s *Settings) SetNum(key string, v float64) { s.set(key, v) }

func (s *Settings) GetBool(key string) (bool, bool) {
	v, ok := s.get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (s *Settings) SetBool(key string, v bool) { s.set(key, v) }

func (s *Settings) GetStr(key string) (string, bool) {
	v, ok := s.get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *Settings) SetStr(key string, v string) { s.set(key, v) }

func (s *Settings) get(key string) (any, bool) {
	parts := splitKey(key)
	g := group(s.doc, parts[:len(parts)-1])
	v, ok := g[parts[len(parts)-1]]
	return v, ok
}

func (s *Settings) set(key string, v any) {
	parts := splitKey(key)
	g := group(s.doc, parts[:len(parts)-1])
	g[parts[len(parts)-1]] = v
}

func splitKey(key string) []string {
	parts := []string{}
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	return append(parts, key[start:])
}

// FindGet returns the value at group.key if present and of the expected
// kind, otherwise creates it with zero (0 / false / "") and returns that,
// matching original_source/core/settings.c's find-or-create accessor.
func (s *Settings) FindGet(group_, key string, kind SettingsKind) any {
	full := group_ + "." + key
	switch kind {
	case SettingsNum:
		if v, ok := s.GetNum(full); ok {
			return v
		}
		s.SetNum(full, 0)
		return 0.0
	case SettingsBool:
		if v, ok := s.GetBool(full); ok {
			return v
		}
		s.SetBool(full, false)
		return false
	default:
		if v, ok := s.GetStr(full); ok {
			return v
		}
		s.SetStr(full, "")
		return ""
	}
}
