package loader

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// PropertyDefined walks root along the dotted path. A key holding nil still counts as defined.
func PropertyDefined(path string, root map[string]any) bool {
	if path == "" {
		return true
	}

	var subject any = root
	for _, prop := range strings.Split(path, ".") {
		m, ok := subject.(map[string]any)
		if !ok {
			return false
		}

		subject, ok = m[prop]
		if !ok {
			return false
		}
	}

	return true
}

// ScriptFunc is what a MapHost runs when a script is appended. It returns the load outcome.
type ScriptFunc func(h *MapHost) error

// AppendedScript records one script insertion.
type AppendedScript struct {
	Src    string
	Parent string
}

// MapHost is an in-memory Host whose globals are nested maps.
type MapHost struct {
	mu       sync.Mutex
	globals  map[string]any
	scripts  map[string]ScriptFunc
	appended []AppendedScript
}

// NewMapHost creates a host with empty globals.
func NewMapHost() *MapHost {
	return &MapHost{
		globals: make(map[string]any),
		scripts: make(map[string]ScriptFunc),
	}
}

// Serve makes src loadable; fn runs asynchronously each time src is appended.
func (h *MapHost) Serve(src string, fn ScriptFunc) *MapHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scripts[src] = fn
	return h
}

// Set defines value at the dotted path, creating intermediate maps.
func (h *MapHost) Set(path string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	parts := strings.Split(path, ".")
	m := h.globals
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Get returns the value at the dotted path.
func (h *MapHost) Get(path string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var subject any = h.globals
	for _, p := range strings.Split(path, ".") {
		m, ok := subject.(map[string]any)
		if !ok {
			return nil, false
		}
		if subject, ok = m[p]; !ok {
			return nil, false
		}
	}
	return subject, true
}

// Appended lists every script inserted so far, in order.
func (h *MapHost) Appended() []AppendedScript {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]AppendedScript(nil), h.appended...)
}

func (h *MapHost) AppendScript(ctx context.Context, src, parent string) <-chan error {
	result := make(chan error, 1)

	if parent == "" {
		parent = "body"
	}

	h.mu.Lock()
	h.appended = append(h.appended, AppendedScript{Src: src, Parent: parent})
	fn, ok := h.scripts[src]
	h.mu.Unlock()

	if !ok {
		result <- fmt.Errorf("no script served at %s", src)
		return result
	}

	go func() {
		if err := ctx.Err(); err != nil {
			result <- err
			return
		}
		result <- fn(h)
	}()

	return result
}

func (h *MapHost) Defined(path string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return PropertyDefined(path, h.globals)
}
