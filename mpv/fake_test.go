package mpv

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// fakeMPV answers the subset of the JSON-IPC protocol the element speaks.
type fakeMPV struct {
	path string
	dir  string
	ln   net.Listener

	mu        sync.Mutex
	props     map[string]any
	commands  [][]any
	observers []*fakeConn
	observing int
	conns     []*fakeConn
}

type fakeConn struct {
	mu   sync.Mutex
	conn net.Conn
}

func (c *fakeConn) send(v any) {
	payload, _ := json.Marshal(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.conn.Write(append(payload, '\n'))
}

func newFakeMPV() (*fakeMPV, error) {
	// short path, unix socket names are length limited
	dir, err := os.MkdirTemp("", "gxmpv")
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	f := &fakeMPV{
		path:  path,
		dir:   dir,
		ln:    ln,
		props: map[string]any{"pause": true, "volume": 100.0},
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			fc := &fakeConn{conn: conn}
			f.mu.Lock()
			f.conns = append(f.conns, fc)
			f.mu.Unlock()
			go f.serve(fc)
		}
	}()

	return f, nil
}

func (f *fakeMPV) Close() {
	_ = f.ln.Close()
	f.mu.Lock()
	for _, c := range f.conns {
		_ = c.conn.Close()
	}
	f.mu.Unlock()
	_ = os.RemoveAll(f.dir)
}

func (f *fakeMPV) serve(c *fakeConn) {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil || len(cmd.Command) == 0 {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		f.mu.Unlock()

		reply := map[string]any{"request_id": cmd.RequestID, "error": "success"}
		var after func()

		switch cmd.Command[0] {
		case "get_property":
			f.mu.Lock()
			v, ok := f.props[cmd.Command[1].(string)]
			f.mu.Unlock()
			if ok {
				reply["data"] = v
			} else {
				reply["error"] = "property unavailable"
			}
		case "set_property":
			name, value := cmd.Command[1].(string), cmd.Command[2]
			after = func() { f.Set(name, value) }
		case "observe_property":
			f.mu.Lock()
			f.observing++
			if !slices.Contains(f.observers, c) {
				f.observers = append(f.observers, c)
			}
			f.mu.Unlock()
		case "loadfile":
			after = func() { f.Set("duration", 200.0) }
		}

		// an unrelated broadcast first, like mpv does
		c.send(map[string]any{"event": "idle"})
		c.send(reply)
		if after != nil {
			after()
		}
	}
}

// WaitObserving blocks until every property observer was registered.
func (f *fakeMPV) WaitObserving() bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		n := f.observing
		f.mu.Unlock()
		if n >= len(observed) {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// Set changes a property and notifies observers.
func (f *fakeMPV) Set(name string, value any) {
	f.mu.Lock()
	f.props[name] = value
	f.mu.Unlock()
	f.Broadcast(map[string]any{"event": "property-change", "name": name, "data": value})
}

// Broadcast sends msg to every observing connection.
func (f *fakeMPV) Broadcast(msg map[string]any) {
	f.mu.Lock()
	observers := append([]*fakeConn{}, f.observers...)
	f.mu.Unlock()

	for _, c := range observers {
		c.send(msg)
	}
}

// Commands returns the names of the commands received so far.
func (f *fakeMPV) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.commands))
	for _, c := range f.commands {
		names = append(names, c[0].(string))
	}
	return names
}

// Command returns the last received command named name.
func (f *fakeMPV) Command(name string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.commands) - 1; i >= 0; i-- {
		if f.commands[i][0] == name {
			return f.commands[i]
		}
	}
	return nil
}
