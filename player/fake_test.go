package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gxplayer/gxplayer/event"
)

type fakeMedia struct {
	mu       sync.Mutex
	src      string
	time     float64
	duration float64
	volume   float64
	calls    []string
	subs     []func(MediaEvent)
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{volume: 1}
}

func (m *fakeMedia) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *fakeMedia) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *fakeMedia) Play() error {
	m.record("play")
	m.Emit(MediaEvent{Type: MediaPlay})
	return nil
}

func (m *fakeMedia) Pause() error {
	m.record("pause")
	m.Emit(MediaEvent{Type: MediaPause})
	return nil
}

func (m *fakeMedia) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.time
}

func (m *fakeMedia) SetCurrentTime(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.time = seconds
	return nil
}

func (m *fakeMedia) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *fakeMedia) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *fakeMedia) SetVolume(v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
	return nil
}

func (m *fakeMedia) SetSource(src string) error {
	if src == "" {
		return errors.New("empty source")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.src = src
	return nil
}

func (m *fakeMedia) Subscribe(fn func(MediaEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *fakeMedia) Close() error {
	m.record("close")
	return nil
}

// Advance moves the clock and fires timeupdate.
func (m *fakeMedia) Advance(current, duration float64) {
	m.mu.Lock()
	m.time, m.duration = current, duration
	m.mu.Unlock()
	m.Emit(MediaEvent{Type: MediaTimeUpdate})
}

func (m *fakeMedia) Emit(ev MediaEvent) {
	m.mu.Lock()
	subs := append([]func(MediaEvent){}, m.subs...)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

type fakeMounter struct {
	target    string
	placement Placement
	err       error
}

func (m *fakeMounter) Mount(target string, p Placement) error {
	if m.err != nil {
		return m.err
	}
	m.target, m.placement = target, p
	return nil
}

type fakeWidget struct {
	mu        sync.Mutex
	cfg       WidgetConfig
	calls     []string
	time      float64
	duration  float64
	volume    int
	seek      float64
	videoID   string
	playlist  string
	destroyed bool
}

func (w *fakeWidget) record(call string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
	return nil
}

func (w *fakeWidget) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *fakeWidget) PlayVideo() error  { return w.record("play") }
func (w *fakeWidget) PauseVideo() error { return w.record("pause") }

func (w *fakeWidget) SeekTo(seconds float64, _ bool) error {
	w.mu.Lock()
	w.seek = seconds
	w.mu.Unlock()
	return w.record("seek")
}

func (w *fakeWidget) SetVolume(v int) error {
	w.mu.Lock()
	w.volume = v
	w.mu.Unlock()
	return w.record("volume")
}

func (w *fakeWidget) LoadVideoByID(id string) error {
	w.mu.Lock()
	w.videoID = id
	w.mu.Unlock()
	return w.record("load")
}

func (w *fakeWidget) CuePlaylist(id string) error {
	w.mu.Lock()
	w.playlist = id
	w.mu.Unlock()
	return w.record("cue")
}

func (w *fakeWidget) CurrentTime() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.time
}

func (w *fakeWidget) SetTime(t float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.time = t
}

func (w *fakeWidget) Duration() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.duration
}

func (w *fakeWidget) Destroy() error {
	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()
	return w.record("destroy")
}

type fakeFactory struct {
	mu        sync.Mutex
	width     int
	failCode  int
	deployed  int
	widgets   []*fakeWidget
	deployErr error
}

func (f *fakeFactory) Deploy(string, string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deployed++
	return f.width, f.deployErr
}

func (f *fakeFactory) NewWidget(cfg WidgetConfig) (Widget, error) {
	w := &fakeWidget{cfg: cfg, duration: 300}

	f.mu.Lock()
	f.widgets = append(f.widgets, w)
	failCode := f.failCode
	f.mu.Unlock()

	go func() {
		time.Sleep(5 * time.Millisecond)
		if failCode != 0 {
			cfg.Events.OnError(failCode)
			return
		}
		cfg.Events.OnReady()
	}()

	return w, nil
}

func (f *fakeFactory) Widgets() []*fakeWidget {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fakeWidget(nil), f.widgets...)
}

func (f *fakeFactory) Last() *fakeWidget {
	widgets := f.Widgets()
	if len(widgets) == 0 {
		return nil
	}
	return widgets[len(widgets)-1]
}

type fakeSDK struct {
	mu    sync.Mutex
	loads int
	err   error
}

func (s *fakeSDK) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return "", s.err
	}
	return "sdk ready", nil
}

func (s *fakeSDK) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// recorder keeps every event fired by a player.
type recorder struct {
	mu    sync.Mutex
	names []string
	data  map[string][]event.Data
}

func record(p Player) *recorder {
	r := &recorder{data: make(map[string][]event.Data)}
	for _, name := range Events {
		name := name
		p.AddEventListener(name, event.Func(func(_ any, data event.Data) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.names = append(r.names, name)
			r.data[name] = append(r.data[name], data)
		}))
	}
	return r
}

func (r *recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data[name])
}

func (r *recorder) Last(name string) event.Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.data[name]
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// Await polls until name was fired at least n times.
func (r *recorder) Await(name string, n int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Count(name) >= n {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return false
}
