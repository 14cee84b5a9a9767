package loader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/network"
	"github.com/metafates/gache"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// maxScriptSize caps both local and remote scripts.
const maxScriptSize = 4 << 20

// compiled prototypes keyed by content hash
var bytecodeCache sync.Map

// LuaOptions configures a LuaHost.
type LuaOptions struct {
	// Dir resolves relative script paths.
	Dir string
	// Client fetches http(s) scripts; network.Client when nil.
	Client *http.Client
	// CachePath is the gache file remote scripts are kept in; no caching when empty.
	CachePath string
	// CacheLifetime is how long a fetched script stays valid.
	CacheLifetime time.Duration
}

// LuaHost is a Host whose scripts are Lua chunks run in one gopher-lua state.
// Every appended script is also recorded in the global table document.scripts.
type LuaHost struct {
	opts LuaOptions

	mu    sync.Mutex
	state *lua.LState
	cache *gache.Cache[map[string]string]
}

// NewLuaHost creates a Lua VM with the standard and mangal libraries preloaded.
func NewLuaHost(opts LuaOptions) *LuaHost {
	state := lua.NewState()
	libs.Preload(state)

	document := state.NewTable()
	state.SetField(document, "scripts", state.NewTable())
	state.SetGlobal("document", document)

	h := &LuaHost{opts: opts, state: state}
	if opts.Client == nil {
		h.opts.Client = network.Client
	}
	if opts.CachePath != "" {
		h.cache = gache.New[map[string]string](&gache.Options{
			Path:       opts.CachePath,
			Lifetime:   opts.CacheLifetime,
			FileSystem: &filesystem.GacheFs{},
		})
	}

	return h
}

// Close releases the Lua state.
func (h *LuaHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Close()
}

// Do runs fn with exclusive access to the Lua state.
func (h *LuaHost) Do(fn func(L *lua.LState) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.state)
}

func (h *LuaHost) AppendScript(ctx context.Context, src, parent string) <-chan error {
	result := make(chan error, 1)

	go func() {
		result <- h.appendScript(ctx, src, parent)
	}()

	return result
}

func (h *LuaHost) appendScript(ctx context.Context, src, parent string) error {
	code, err := h.fetch(ctx, src)
	if err != nil {
		return err
	}

	proto, err := compile(src, code)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if parent == "" {
		parent = "body"
	}
	h.record(src, parent)

	L := h.state
	L.SetContext(ctx)
	defer L.RemoveContext()

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", src, err)
	}

	log.Debugf("lua host ran %s", src)
	return nil
}

func (h *LuaHost) Defined(path string) bool {
	if path == "" {
		return true
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	parts := strings.Split(path, ".")
	value := h.state.GetGlobal(parts[0])
	for _, p := range parts[1:] {
		tbl, ok := value.(*lua.LTable)
		if !ok {
			return false
		}
		value = tbl.RawGetString(p)
	}

	return value != lua.LNil
}

func (h *LuaHost) record(src, parent string) {
	L := h.state
	document, ok := L.GetGlobal("document").(*lua.LTable)
	if !ok {
		return
	}
	scripts, ok := document.RawGetString("scripts").(*lua.LTable)
	if !ok {
		return
	}

	entry := L.NewTable()
	L.SetField(entry, "src", lua.LString(src))
	L.SetField(entry, "parent", lua.LString(parent))
	scripts.Append(entry)
}

func (h *LuaHost) fetch(ctx context.Context, src string) ([]byte, error) {
	if isRemote(src) {
		return h.fetchRemote(ctx, src)
	}

	path := strings.TrimPrefix(src, "file://")
	if !filepath.IsAbs(path) && h.opts.Dir != "" {
		path = filepath.Join(h.opts.Dir, path)
	}

	return filesystem.ReadSmall(path, maxScriptSize)
}

func (h *LuaHost) fetchRemote(ctx context.Context, src string) ([]byte, error) {
	if h.cache != nil {
		if cached, expired, err := h.cache.Get(); err == nil && !expired {
			if code, ok := cached[src]; ok {
				return []byte(code), nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.opts.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", src, resp.Status)
	}

	code, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize))
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		cached, expired, err := h.cache.Get()
		if err != nil || expired || cached == nil {
			cached = make(map[string]string)
		}
		cached[src] = string(code)
		if err := h.cache.Set(cached); err != nil {
			log.Warnf("cache %s: %v", src, err)
		}
	}

	return code, nil
}

func compile(name string, code []byte) (*lua.FunctionProto, error) {
	sum := sha256.Sum256(code)
	id := hex.EncodeToString(sum[:])

	if cached, ok := bytecodeCache.Load(id); ok {
		return cached.(*lua.FunctionProto), nil
	}

	chunk, err := parse.Parse(bytes.NewReader(code), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	bytecodeCache.Store(id, proto)
	return proto, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
