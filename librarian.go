// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// librarian.go implements the resource librarian (§4.4): URI
// construction, refcounted handles, and swappable sync/async backends.
// The sync (desktop) backend is grounded directly on load/locator.go's
// extension-to-directory convention; the async (browser) backend is
// grounded on the teacher's old loader.go goroutine+channel completion
// pattern, generalized from "model/texture load" to "arbitrary named
// resource fetch".

import (
	"io"
	"os"
	"path"
	"runtime"

	"github.com/onehandclap/clap/load"
)

// ResourceKind selects which URI convention and directory lib_figure_uri
// applies.
type ResourceKind int

const (
	KindConfig ResourceKind = iota
	KindAsset
	KindShader
	KindState
)

// HandleState is the lifecycle of a librarian Handle.
type HandleState int

const (
	HandleRequested HandleState = iota
	HandleLoaded
	HandleError
)

// Handle is a refcounted asset request (§3 "Queued outbound message" /
// §4.4 "Handle"). Release frees Buffer.
type Handle struct {
	Object
	Name       string
	Kind       ResourceKind
	Buffer     []byte
	State      HandleState
	onComplete func(h *Handle)
	UserData   any
}

var handleClass = &ClassDescriptor{Name: "librarian.Handle"}

// FigureURI maps (kind, name) to a concrete path, matching §4.4's
// lib_figure_uri: config names under baseURL/config, shader names under
// baseURL/shaders, state names under the per-user state directory, and
// assets directly under baseURL. Shader paths are not varied by GLSL
// vs. ES target.
func (lib *Librarian) FigureURI(kind ResourceKind, name string) string {
	switch kind {
	case KindConfig:
		return path.Join(lib.baseURL, "config", name)
	case KindState:
		return path.Join(lib.statePath(), name)
	case KindShader:
		return path.Join(lib.baseURL, "shaders", name)
	default:
		return path.Join(lib.baseURL, name)
	}
}

func (lib *Librarian) statePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return path.Join(dir, "clap")
	}
	return ".clap-state"
}

// Backend fetches the bytes for a URI. Sync backends return
// synchronously from Fetch; async backends accept the completion
// callback and call it later from Poll.
type Backend interface {
	Fetch(h *Handle)
	// Poll drains any completions ready since the last call, invoking
	// each handle's completion callback. Sync backends implement Poll
	// as a no-op since Fetch already completed synchronously.
	Poll()
}

// Librarian is the URI-addressed, refcount-aware asset request surface.
type Librarian struct {
	baseURL string
	backend Backend
	locator load.Locator
}

// NewLibrarian creates a Librarian using the sync (desktop filesystem)
// backend by default. Call SetBackend to switch to the async browser
// backend.
func NewLibrarian(baseURL string) *Librarian {
	lib := &Librarian{baseURL: baseURL, locator: load.NewLocator()}
	lib.backend = &syncBackend{locator: lib.locator}
	return lib
}

// SetBackend swaps the fetch backend, e.g. for an async WASM build.
func (lib *Librarian) SetBackend(b Backend) { lib.backend = b }

// Request creates a Handle for name/kind and issues a fetch. The
// completion callback fires at most once, synchronously for the sync
// backend or on a later Poll for the async one; it may release the
// handle itself, which is the typical usage pattern.
func (lib *Librarian) Request(kind ResourceKind, name string, onComplete func(h *Handle)) (*Handle, error) {
	obj, err := NewObject(handleClass, nil)
	if err != nil {
		return nil, err
	}
	h := &Handle{Object: *obj, Name: name, Kind: kind, State: HandleRequested, onComplete: onComplete}
	lib.backend.Fetch(h)
	return h, nil
}

// Poll drains any pending async completions. No-op for the sync backend.
func (lib *Librarian) Poll() { lib.backend.Poll() }

// Release decrements h's reference count, freeing its buffer on the
// final release.
func (lib *Librarian) Release(h *Handle) {
	Release(&h.Object)
	if h.Count() == 0 {
		h.Buffer = nil
	}
}

// Dispose releases the underlying locator (closes any open asset zip).
func (lib *Librarian) Dispose() {
	if lib.locator != nil {
		lib.locator.Dispose()
	}
}

// syncBackend is the desktop filesystem backend: it opens the file,
// reads it fully, and invokes the completion callback before Fetch
// returns (§4.4 "Sync backend").
type syncBackend struct {
	locator load.Locator
}

func (b *syncBackend) Fetch(h *Handle) {
	f, err := b.locator.GetResource(h.Name)
	if err != nil {
		h.State = HandleError
		h.Buffer = nil
		if h.onComplete != nil {
			h.onComplete(h)
		}
		return
	}
	defer f.Close()
	buf, err := io.ReadAll(f)
	if err != nil {
		h.State = HandleError
		h.Buffer = nil
	} else {
		h.State = HandleLoaded
		h.Buffer = buf
	}
	if h.onComplete != nil {
		h.onComplete(h)
	}
}

func (b *syncBackend) Poll() {}

// asyncFetcher abstracts the host's async fetch primitive (e.g. a WASM
// fetch() call) so the async backend itself stays host-agnostic.
type asyncFetcher func(uri string) ([]byte, error)

// asyncBackend models the browser fetch backend: Fetch starts work on a
// goroutine standing in for the host event loop, and completions are
// queued for the engine thread to drain on Poll, matching §5's "async
// completions must be routed back to the engine thread before mutating
// engine state."
type asyncBackend struct {
	lib     *Librarian
	fetch   asyncFetcher
	pending chan *Handle
}

// NewAsyncBackend creates a backend that calls fetch on a background
// goroutine per request and buffers completions until Poll is called
// from the frame orchestrator.
func NewAsyncBackend(lib *Librarian, fetch asyncFetcher) Backend {
	return &asyncBackend{lib: lib, fetch: fetch, pending: make(chan *Handle, 64)}
}

func (b *asyncBackend) Fetch(h *Handle) {
	uri := b.lib.FigureURI(h.Kind, h.Name)
	go func() {
		buf, err := b.fetch(uri)
		if err != nil {
			h.State = HandleError
			h.Buffer = nil
		} else {
			h.State = HandleLoaded
			h.Buffer = buf
		}
		b.pending <- h
	}()
	runtime.Gosched()
}

func (b *asyncBackend) Poll() {
	for {
		select {
		case h := <-b.pending:
			if h.onComplete != nil {
				h.onComplete(h)
			}
		default:
			return
		}
	}
}
