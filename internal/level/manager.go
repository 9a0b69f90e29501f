package level

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-golem/internal/anim"
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/storage"
	"github.com/pixil98/go-golem/internal/turn"
)

const DefaultTransition = 400 * time.Millisecond

type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
)

func (m Mode) String() string {
	if m == ModePlaying {
		return "playing"
	}
	return "menu"
}

// Music is the soundtrack side of the audio manager.
type Music interface {
	Crossfade(from, to string, d time.Duration)
}

type requestKind int

const (
	requestLoad requestKind = iota
	requestNext
	requestRestart
	requestMenu
)

type request struct {
	kind  requestKind
	index int
}

// Status is a read-only summary for the HUD.
type Status struct {
	Mode   Mode
	Index  int
	Count  int
	ID     string
	Title  string
	Hint   string
	Phase  turn.Phase
	Turn   uint64
	Moving bool
}

// Manager owns the current level. Load requests can come from anywhere,
// including actions running inside the level, and take effect on the next
// Tick.
type Manager struct {
	mu sync.Mutex

	catalog    *storage.Catalog[*Spec]
	deps       Deps
	music      Music
	logger     *slog.Logger
	transition time.Duration

	mode   Mode
	index  int
	world  *World
	fading *anim.Tween
	staged *request

	reqMu   sync.Mutex
	pending *request

	inputEnabled atomic.Bool
}

func NewManager(catalog *storage.Catalog[*Spec], deps Deps, opts ...ManagerOpt) *Manager {
	m := &Manager{
		catalog:    catalog,
		deps:       deps,
		logger:     slog.Default(),
		transition: DefaultTransition,
		index:      -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.deps.Sounds == nil {
		m.deps.Sounds = audio.Silent{}
	}
	if m.deps.Logger == nil {
		m.deps.Logger = m.logger
	}
	m.deps.Levels = m
	m.deps.InputGate = m.inputEnabled.Load
	return m
}

// Load asks for the level at zero-based catalog position i.
func (m *Manager) Load(i int) {
	m.request(request{kind: requestLoad, index: i})
}

// LoadNext moves on to the following level, or back to the menu after the
// last one.
func (m *Manager) LoadNext() {
	m.request(request{kind: requestNext})
}

func (m *Manager) Restart() {
	m.request(request{kind: requestRestart})
}

func (m *Manager) ReturnToMenu() {
	m.request(request{kind: requestMenu})
}

func (m *Manager) request(r request) {
	m.reqMu.Lock()
	defer m.reqMu.Unlock()
	m.pending = &r
}

func (m *Manager) takeRequest() *request {
	m.reqMu.Lock()
	defer m.reqMu.Unlock()
	r := m.pending
	m.pending = nil
	return r
}

// InputEnabled is false while a level transition plays.
func (m *Manager) InputEnabled() bool {
	return m.inputEnabled.Load()
}

func (m *Manager) Catalog() *storage.Catalog[*Spec] {
	return m.catalog
}

// Tick applies any pending request, advances transitions and runs one frame
// of the current level. A level that fails to build drops back to the menu;
// only an empty catalog is reported as an error.
func (m *Manager) Tick(dt time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fading == nil {
		if r := m.takeRequest(); r != nil {
			if err := m.begin(*r); err != nil {
				return err
			}
		}
	}

	if m.fading != nil {
		if _, done := m.fading.Step(dt); done {
			m.fading = nil
			if r := m.staged; r != nil {
				m.staged = nil
				if err := m.apply(*r); err != nil {
					return err
				}
			} else {
				m.inputEnabled.Store(m.mode == ModePlaying)
			}
		}
	}

	if m.world != nil {
		m.world.Tick(dt)
	}
	return nil
}

// begin plays the outgoing transition when leaving a level, or applies the
// request straight away from the menu.
func (m *Manager) begin(r request) error {
	if m.mode == ModePlaying && m.transition > 0 {
		m.staged = &r
		m.startFade()
		return nil
	}
	return m.apply(r)
}

func (m *Manager) startFade() {
	m.inputEnabled.Store(false)
	m.fading = anim.NewTween(m.transition, geom.EaseInOut)
	m.deps.Sounds.PlayRandomGroupSound(audio.GroupLevelTransition)
}

func (m *Manager) apply(r request) error {
	switch r.kind {
	case requestMenu:
		m.toMenu()
		return nil
	case requestNext:
		return m.load(m.index + 1)
	case requestRestart:
		return m.load(m.index)
	default:
		return m.load(r.index)
	}
}

func (m *Manager) load(i int) error {
	if m.catalog == nil || m.catalog.Len() == 0 {
		m.toMenu()
		return ErrNoLevels
	}
	id, spec, err := m.catalog.At(i)
	if err != nil {
		// past the last level, or a stale index
		m.toMenu()
		return nil
	}

	world, err := Build(spec, m.deps)
	if err != nil {
		m.logger.Error("building level", "id", id, "error", err)
		m.toMenu()
		return nil
	}

	if m.mode == ModeMenu && m.music != nil {
		m.music.Crossfade(audio.TrackMenu, audio.TrackMain, audio.SoundtrackCrossfade)
	}
	m.mode = ModePlaying
	m.index = i
	m.world = world
	m.logger.Info("level loaded", "id", id, "title", spec.Title(), "index", i)

	if m.transition > 0 {
		m.startFade()
	} else {
		m.inputEnabled.Store(true)
	}
	return nil
}

func (m *Manager) toMenu() {
	if m.mode == ModePlaying && m.music != nil {
		m.music.Crossfade(audio.TrackMain, audio.TrackMenu, audio.SoundtrackCrossfade)
	}
	m.mode = ModeMenu
	m.world = nil
	m.fading = nil
	m.inputEnabled.Store(false)
	m.logger.Info("returned to menu")
}

// View runs fn with the current status and world, which is nil on the
// menu. The world must not be kept after fn returns.
func (m *Manager) View(fn func(Status, *World)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.statusLocked(), m.world)
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked()
}

func (m *Manager) statusLocked() Status {
	s := Status{Mode: m.mode, Index: m.index}
	if m.catalog != nil {
		s.Count = m.catalog.Len()
	}
	if m.world == nil {
		return s
	}
	id, _, _ := m.catalog.At(m.index)
	s.ID = id
	s.Title = m.world.Spec.Title()
	s.Hint = m.world.Spec.Hint()
	s.Phase = m.world.Manager.CurrentTurn()
	s.Turn = m.world.Manager.Turn()
	s.Moving = !m.world.Manager.ReadyForNextTurn()
	return s
}
