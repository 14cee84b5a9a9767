// Package mpv drives an mpv process through its JSON-IPC socket and exposes it
// as a native media element.
package mpv

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const socketPollDelay = 100 * time.Millisecond

// file error code reported with MediaError, the media element equivalent of
// MEDIA_ERR_SRC_NOT_SUPPORTED
const errSourceNotSupported = 4

// Options configure the spawned process.
type Options struct {
	// Binary is the mpv executable.
	Binary string
	// SocketWait bounds how long the IPC socket may take to appear.
	SocketWait time.Duration
	// ExtraArgs are appended to the command line.
	ExtraArgs []string
	// Title is shown in the mpv window.
	Title string
	// NoVideo disables the video output.
	NoVideo bool
}

// OptionsFromConfig reads Options from the configuration.
func OptionsFromConfig() Options {
	return Options{
		Binary:     lo.Ternary(viper.GetString(key.MpvBinary) != "", viper.GetString(key.MpvBinary), "mpv"),
		SocketWait: lo.Ternary(viper.GetDuration(key.MpvSocketWait) > 0, viper.GetDuration(key.MpvSocketWait), 3*time.Second),
		ExtraArgs:  viper.GetStringSlice(key.MpvExtraArgs),
		Title:      constant.Gxplayer,
	}
}

// Element is a player.Media backed by mpv.
type Element struct {
	opts Options

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener

	ipcMu sync.Mutex // serialises socket round trips

	mu          sync.Mutex
	subscribers []func(player.MediaEvent)
	position    float64
	duration    float64
	volume      float64
	ended       bool
}

// New creates an element; nothing runs until Start or Attach.
func New(opts Options) *Element {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}
	if opts.SocketWait <= 0 {
		opts.SocketWait = 3 * time.Second
	}

	return &Element{
		opts:   opts,
		volume: 1,
	}
}

// Start spawns an idle mpv and waits for its socket.
func (e *Element) Start(ctx context.Context) error {
	if e.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		e.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Gxplayer, randomBytes))
	}

	e.cmd = exec.CommandContext(ctx, e.opts.Binary, e.args()...)

	// detach from the parent process group
	e.cmd.SysProcAttr = sysProcAttr()
	e.cmd.Stdout = nil
	e.cmd.Stderr = nil
	e.cmd.Stdin = nil

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process to prevent zombies
	e.exited = make(chan struct{})
	go func() {
		_ = e.cmd.Wait()
		close(e.exited)
	}()

	if err := e.waitForSocket(ctx); err != nil {
		select {
		case <-e.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(e.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return e.listen()
}

// Attach connects to an mpv already serving socketPath.
func (e *Element) Attach(socketPath string) error {
	e.socketPath = socketPath
	return e.listen()
}

func (e *Element) args() []string {
	title := sanitizeTitle(e.opts.Title)

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", e.socketPath),
		fmt.Sprintf("--title=%s", title),
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
	}

	if e.opts.NoVideo {
		args = append(args, "--no-video", "--force-window=no")
	} else {
		args = append(args, "--force-window=yes")
	}

	return append(args, e.opts.ExtraArgs...)
}

// waitForSocket polls until the IPC socket accepts connections.
func (e *Element) waitForSocket(ctx context.Context) error {
	ticker := time.NewTicker(socketPollDelay)
	defer ticker.Stop()

	deadline := time.NewTimer(e.opts.SocketWait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-deadline.C:
			return fmt.Errorf("socket %s not ready after %s", e.socketPath, e.opts.SocketWait)
		case <-ticker.C:
			conn, err := net.Dial("unix", e.socketPath)
			if err == nil {
				conn.Close()
				return nil
			}
		}
	}
}

func (e *Element) listen() error {
	e.listener = NewEventListener(e.socketPath, e.handle)
	return e.listener.Start()
}

// SocketPath returns the IPC socket path.
func (e *Element) SocketPath() string {
	return e.socketPath
}

// Wait returns a channel closed when a spawned mpv exits, nil for attached ones.
func (e *Element) Wait() <-chan struct{} {
	return e.exited
}

func (e *Element) Subscribe(fn func(player.MediaEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

func (e *Element) SetSource(src string) error {
	target, err := sanitizeMediaTarget(src)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	e.mu.Lock()
	e.position, e.duration, e.ended = 0, 0, false
	e.mu.Unlock()

	_, err = e.sendCommand("loadfile", target, "replace")
	return err
}

func (e *Element) Play() error {
	return e.set("pause", false)
}

func (e *Element) Pause() error {
	return e.set("pause", true)
}

func (e *Element) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

func (e *Element) SetCurrentTime(seconds float64) error {
	_, err := e.sendCommand("seek", seconds, "absolute")
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.position = seconds
	e.mu.Unlock()

	return nil
}

func (e *Element) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) SetVolume(v float64) error {
	if err := e.set("volume", v*100); err != nil {
		return err
	}

	e.mu.Lock()
	e.volume = v
	e.mu.Unlock()

	return nil
}

// Close stops listening and shuts a spawned mpv down, killing it if it will not quit.
func (e *Element) Close() error {
	if e.listener != nil {
		e.listener.Stop()
	}

	if e.cmd == nil {
		return nil
	}

	_, _ = e.sendCommand("quit")

	select {
	case <-e.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(e.cmd)
	}

	_ = os.Remove(e.socketPath)
	return nil
}

func (e *Element) set(property string, value any) error {
	_, err := e.sendCommand("set_property", property, value)
	return err
}

func (e *Element) handle(msg ipcMessage) {
	switch msg.Event {
	case "property-change":
		e.propertyChanged(msg.Name, msg.Data)
	case "end-file":
		switch msg.Reason {
		case "error":
			e.fire(player.MediaEvent{
				Type: player.MediaError,
				Code: errSourceNotSupported,
				Err:  fmt.Errorf("end of file: %s", lo.Ternary(msg.FileError != "", msg.FileError, "unknown error")),
			})
		case "eof":
			e.end()
		}
	}
}

func (e *Element) propertyChanged(name string, data any) {
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return
		}
		e.fire(player.MediaEvent{Type: lo.Ternary(paused, player.MediaPause, player.MediaPlay)})

	case "time-pos":
		pos, ok := data.(float64)
		if !ok {
			return
		}
		e.mu.Lock()
		e.position = pos
		e.mu.Unlock()
		e.fire(player.MediaEvent{Type: player.MediaTimeUpdate})

	case "duration":
		duration, ok := data.(float64)
		if !ok {
			return
		}
		e.mu.Lock()
		known := e.duration > 0
		e.duration = duration
		e.mu.Unlock()
		if !known {
			e.fire(player.MediaEvent{Type: player.MediaLoadedMetadata})
		}

	case "eof-reached":
		if reached, _ := data.(bool); reached {
			e.end()
		}

	case "paused-for-cache":
		waiting, ok := data.(bool)
		if !ok {
			return
		}
		e.fire(player.MediaEvent{Type: lo.Ternary(waiting, player.MediaWaiting, player.MediaPlaying)})

	case "volume":
		if volume, ok := data.(float64); ok {
			e.mu.Lock()
			e.volume = volume / 100
			e.mu.Unlock()
		}
	}
}

// end fires ended once per loaded file.
func (e *Element) end() {
	e.mu.Lock()
	already := e.ended
	e.ended = true
	e.mu.Unlock()

	if !already {
		e.fire(player.MediaEvent{Type: player.MediaEnded})
	}
}

func (e *Element) fire(ev player.MediaEvent) {
	e.mu.Lock()
	subscribers := append([]func(player.MediaEvent){}, e.subscribers...)
	e.mu.Unlock()

	for _, fn := range subscribers {
		fn(ev)
	}
}

// sanitizeMediaTarget validates that a source is safe to hand to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// must not look like a flag
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
