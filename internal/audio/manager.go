package audio

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// track is a music stream that stays in the mix until faded or stopped.
// Its fields are guarded by the output lock.
type track struct {
	name   string
	ctrl   *beep.Ctrl
	volume *effects.Volume
	fade   *ramp
	base   float64
	done   bool
}

func (t *track) stop() {
	t.done = true
	t.ctrl.Streamer = nil
}

// Manager plays named sounds and soundtrack transitions. Every method is
// fire-and-forget: unknown names are logged and ignored.
type Manager struct {
	mu sync.Mutex

	bank   *Bank
	out    Output
	logger *slog.Logger
	pick   func(n int) int

	musicVolume   float64
	effectsVolume float64

	buffers map[string]*beep.Buffer
	tracks  map[string]*track
}

func NewManager(bank *Bank, out Output, opts ...ManagerOpt) *Manager {
	if bank == nil {
		bank = DefaultBank()
	}
	m := &Manager{
		bank:          bank,
		out:           out,
		logger:        slog.Default(),
		pick:          rand.IntN,
		musicVolume:   1,
		effectsVolume: 1,
		buffers:       map[string]*beep.Buffer{},
		tracks:        map[string]*track{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PlaySound starts an effect, or starts a music track looping if it is not
// already playing.
func (m *Manager) PlaySound(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sound, ok := m.bank.Sounds[name]
	if !ok {
		m.logger.Warn("sound not found", "sound", name)
		return
	}

	if sound.Kind == KindMusic {
		m.startTrackLocked(name, sound, 1)
		return
	}

	buf := m.bufferLocked(name, sound)
	m.out.Play(newVolume(buf.Streamer(0, buf.Len()), sound.Volume*m.effectsVolume))
}

// PlayRandomGroupSound plays one member of a group picked at random.
func (m *Manager) PlayRandomGroupSound(group string) {
	m.mu.Lock()
	members, ok := m.bank.Groups[group]
	var name string
	if ok && len(members) > 0 {
		name = members[m.pick(len(members))]
	}
	m.mu.Unlock()

	if name == "" {
		m.logger.Warn("sound group not found", "group", group)
		return
	}
	m.PlaySound(name)
}

// Crossfade ramps from down and to up over d. Any transition still running
// is halted first, leaving its tracks at their current level.
func (m *Manager) Crossfade(from, to string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.bank.Sounds[to]
	if !ok {
		m.logger.Warn("sound not found", "sound", to)
		return
	}

	m.pruneLocked()
	n := samplesFor(m.out.Format().SampleRate, d)

	m.out.Lock()
	for _, t := range m.tracks {
		t.fade.halt()
	}
	if t, ok := m.tracks[from]; ok && from != to {
		t.fade.slide(0, n)
		if t.fade.level == 0 {
			t.stop()
		} else {
			t.fade.onSilent = t.stop
		}
	}
	m.out.Unlock()

	if t, ok := m.tracks[to]; ok {
		m.out.Lock()
		t.fade.slide(1, n)
		m.out.Unlock()
		return
	}
	t := m.startTrackLocked(to, target, 0)
	m.out.Lock()
	t.fade.slide(1, n)
	m.out.Unlock()
}

// SwitchAfterLoops lets from play n more times from the top, then continues
// with to looping in its place.
func (m *Manager) SwitchAfterLoops(from, to string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromSound, ok := m.bank.Sounds[from]
	if !ok {
		m.logger.Warn("sound not found", "sound", from)
		return
	}
	toSound, ok := m.bank.Sounds[to]
	if !ok {
		m.logger.Warn("sound not found", "sound", to)
		return
	}

	m.pruneLocked()
	level := 1.0
	m.out.Lock()
	for name, t := range m.tracks {
		if name == from || name == to {
			level = t.fade.level
			t.fade.halt()
			t.stop()
		}
	}
	m.out.Unlock()
	delete(m.tracks, from)
	delete(m.tracks, to)

	fromBuf := m.bufferLocked(from, fromSound)
	toBuf := m.bufferLocked(to, toSound)
	stream := beep.Seq(
		beep.Loop(max(n, 1), fromBuf.Streamer(0, fromBuf.Len())),
		beep.Loop(-1, toBuf.Streamer(0, toBuf.Len())),
	)
	m.addTrackLocked(to, toSound, stream, level)
}

// SetVolumes applies new master levels, clamped to [0,1], to everything
// playing and everything started later.
func (m *Manager) SetVolumes(music, effectsVol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.musicVolume = clamp01(music)
	m.effectsVolume = clamp01(effectsVol)

	m.out.Lock()
	defer m.out.Unlock()
	for _, t := range m.tracks {
		setVolume(t.volume, t.base*m.musicVolume)
	}
}

func (m *Manager) Volumes() (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicVolume, m.effectsVolume
}

// Playing lists the music tracks still audible or fading.
func (m *Manager) Playing() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	names := make([]string, 0, len(m.tracks))
	for name := range m.tracks {
		names = append(names, name)
	}
	return names
}

// Level is a track's current fade level, or zero when it is not playing.
func (m *Manager) Level(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tracks[name]
	if !ok {
		return 0
	}
	m.out.Lock()
	defer m.out.Unlock()
	if t.done {
		return 0
	}
	return t.fade.level
}

// Fading reports whether any track is still ramping.
func (m *Manager) Fading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.out.Lock()
	defer m.out.Unlock()
	for _, t := range m.tracks {
		if !t.done && t.fade.moving() {
			return true
		}
	}
	return false
}

// Stop silences every track.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.out.Lock()
	for _, t := range m.tracks {
		t.stop()
	}
	m.out.Unlock()
	m.tracks = map[string]*track{}
}

func (m *Manager) startTrackLocked(name string, sound Sound, level float64) *track {
	m.pruneLocked()
	if t, ok := m.tracks[name]; ok {
		return t
	}
	buf := m.bufferLocked(name, sound)
	return m.addTrackLocked(name, sound, beep.Loop(-1, buf.Streamer(0, buf.Len())), level)
}

func (m *Manager) addTrackLocked(name string, sound Sound, s beep.Streamer, level float64) *track {
	t := &track{name: name, base: sound.Volume}
	t.fade = &ramp{streamer: s, level: level, target: level}
	t.volume = newVolume(t.fade, t.base*m.musicVolume)
	t.ctrl = &beep.Ctrl{Streamer: t.volume}
	m.tracks[name] = t
	m.out.Play(t.ctrl)
	return t
}

func (m *Manager) pruneLocked() {
	m.out.Lock()
	defer m.out.Unlock()
	for name, t := range m.tracks {
		if t.done {
			delete(m.tracks, name)
		}
	}
}

func (m *Manager) bufferLocked(name string, s Sound) *beep.Buffer {
	if buf, ok := m.buffers[name]; ok {
		return buf
	}
	buf := render(s, m.out.Format())
	m.buffers[name] = buf
	return buf
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
