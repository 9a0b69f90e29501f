package display

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/dice"
	"github.com/pixil98/go-golem/internal/level"
	"github.com/pixil98/go-golem/internal/messaging"
	"github.com/pixil98/go-golem/internal/storage"
	"github.com/pixil98/go-golem/internal/turn"
)

const (
	volumeStep    = 0.1
	maxEventLines = 4
	boardTop      = 5
)

// Levels is the part of the level manager the terminal drives.
type Levels interface {
	View(fn func(level.Status, *level.World))
	Catalog() *storage.Catalog[*level.Spec]
	Load(i int)
	Restart()
	ReturnToMenu()
}

// Mixer is the part of the audio manager volume keys adjust.
type Mixer interface {
	audio.Player
	Volumes() (float64, float64)
	SetVolumes(music, effects float64)
}

// VolumeStore persists the volume settings.
type VolumeStore interface {
	Volumes(ctx context.Context) (float64, float64, error)
	SetMusicVolume(ctx context.Context, v float64) error
	SetEffectsVolume(ctx context.Context, v float64) error
}

// Terminal draws the game with tcell and turns key presses into input.
// Tick must be called from the frame loop; Start runs the event loop.
type Terminal struct {
	screen tcell.Screen
	levels Levels
	input  *dice.Latch
	mixer  Mixer
	store  VolumeStore
	feed   messaging.Subscriber
	ready  <-chan struct{}
	hud    *template.Template
	quit   func()
	logger *slog.Logger

	mu       sync.Mutex
	cursor   int
	events   []string
	lastMode level.Mode
	seenMode bool
}

func NewTerminal(screen tcell.Screen, levels Levels, input *dice.Latch, opts ...TerminalOpt) (*Terminal, error) {
	t := &Terminal{
		screen: screen,
		levels: levels,
		input:  input,
		quit:   func() {},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.hud == nil {
		hud, err := ParseTemplate(DefaultHUD)
		if err != nil {
			return nil, err
		}
		t.hud = hud
	}
	return t, nil
}

// Start handles terminal events until ctx is done or the player quits, then
// restores the terminal.
func (t *Terminal) Start(ctx context.Context) error {
	defer t.screen.Fini()

	if t.feed != nil {
		go t.subscribe(ctx)
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.HandleEvent(ctx, ev) {
				t.quit()
				return nil
			}
		}
	}
}

func (t *Terminal) subscribe(ctx context.Context) {
	if t.ready != nil {
		select {
		case <-ctx.Done():
			return
		case <-t.ready:
		}
	}
	unsub, err := messaging.SubscribeTurns(t.feed, t.Record)
	if err != nil {
		t.logger.Warn("subscribing to turn events", "error", err)
		return
	}
	<-ctx.Done()
	unsub()
}

// Record keeps notable turn events for the event log under the board.
func (t *Terminal) Record(e turn.Event) {
	var line string
	switch e.Kind {
	case turn.EventActionRequeued:
		line = fmt.Sprintf("turn %d: %s waiting (retry %d)", e.Turn, e.Producer, e.Retries)
	case turn.EventActionAbandoned:
		line = fmt.Sprintf("turn %d: %s gave up", e.Turn, e.Producer)
	case turn.EventActionTimedOut:
		line = fmt.Sprintf("turn %d: %s timed out", e.Turn, e.Producer)
	default:
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, line)
	if len(t.events) > maxEventLines {
		t.events = t.events[len(t.events)-maxEventLines:]
	}
}

// HandleEvent applies one terminal event. It returns false when the player
// asked to quit.
func (t *Terminal) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if t.handleVolume(ctx, ev) {
			return true
		}
		var mode level.Mode
		t.levels.View(func(s level.Status, _ *level.World) { mode = s.Mode })
		if mode == level.ModeMenu {
			return t.handleMenu(ev)
		}
		t.handlePlaying(ev)
	}
	return true
}

func (t *Terminal) handleMenu(ev *tcell.EventKey) bool {
	catalog := t.levels.Catalog()
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyUp:
		t.moveCursor(-1, catalog.Len())
	case tcell.KeyDown:
		t.moveCursor(1, catalog.Len())
	case tcell.KeyEnter:
		t.mu.Lock()
		i := t.cursor
		t.mu.Unlock()
		t.levels.Load(i)
	case tcell.KeyRune:
		r := ev.Rune()
		if r == 'q' {
			return false
		}
		if r >= '1' && r <= '9' {
			if id := catalog.Select(int(r - '0')); id != "" {
				t.levels.Load(catalog.IndexOf(id))
			}
		}
	}
	return true
}

func (t *Terminal) moveCursor(delta, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n == 0 {
		t.cursor = 0
		return
	}
	t.cursor = (t.cursor + delta + n) % n
}

func (t *Terminal) handlePlaying(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		t.levels.ReturnToMenu()
	case tcell.KeyUp:
		t.input.Set(dice.Axes{Vertical: 1})
	case tcell.KeyDown:
		t.input.Set(dice.Axes{Vertical: -1})
	case tcell.KeyRight:
		t.input.Set(dice.Axes{Horizontal: 1})
	case tcell.KeyLeft:
		t.input.Set(dice.Axes{Horizontal: -1})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			t.input.Set(dice.Axes{Vertical: 1})
		case 's', 'S':
			t.input.Set(dice.Axes{Vertical: -1})
		case 'd', 'D':
			t.input.Set(dice.Axes{Horizontal: 1})
		case 'a', 'A':
			t.input.Set(dice.Axes{Horizontal: -1})
		case 'r', 'R':
			t.levels.Restart()
		}
	}
}

func (t *Terminal) handleVolume(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune || t.mixer == nil {
		return false
	}

	music, effects := t.mixer.Volumes()
	switch ev.Rune() {
	case '+', '=':
		music = stepVolume(music, volumeStep)
	case '-', '_':
		music = stepVolume(music, -volumeStep)
	case ']':
		effects = stepVolume(effects, volumeStep)
	case '[':
		effects = stepVolume(effects, -volumeStep)
	default:
		return false
	}

	t.mixer.SetVolumes(music, effects)
	t.mixer.PlayRandomGroupSound(audio.GroupVolumeCheck)
	if t.store == nil {
		return true
	}
	if err := t.store.SetMusicVolume(ctx, music); err != nil {
		t.logger.Warn("saving music volume", "error", err)
	}
	if err := t.store.SetEffectsVolume(ctx, effects); err != nil {
		t.logger.Warn("saving effects volume", "error", err)
	}
	return true
}

func stepVolume(v, delta float64) float64 {
	return min(max(math.Round((v+delta)*10)/10, 0), 1)
}

// Tick redraws the screen from the current level state.
func (t *Terminal) Tick(time.Duration) error {
	t.screen.Clear()

	var menuOpened bool
	t.levels.View(func(s level.Status, w *level.World) {
		menuOpened = t.noteMode(s.Mode)
		if w == nil {
			t.drawMenu()
			return
		}
		t.drawLevel(s, w)
	})
	if menuOpened {
		t.loadVolumes()
	}

	t.screen.Show()
	return nil
}

// noteMode reports whether the menu has just been opened.
func (t *Terminal) noteMode(m level.Mode) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	opened := m == level.ModeMenu && (!t.seenMode || t.lastMode != level.ModeMenu)
	t.lastMode, t.seenMode = m, true
	return opened
}

func (t *Terminal) loadVolumes() {
	if t.store == nil || t.mixer == nil {
		return
	}
	music, effects, err := t.store.Volumes(context.Background())
	if err != nil {
		t.logger.Warn("loading volume settings", "error", err)
		return
	}
	t.mixer.SetVolumes(music, effects)
}

func (t *Terminal) drawMenu() {
	catalog := t.levels.Catalog()
	drawText(t.screen, 2, 1, "G O L E M", styleTitle)

	y := 3
	for _, row := range catalog.Rows() {
		drawText(t.screen, 2, y, row, styleText)
		y++
	}

	t.mu.Lock()
	cursor := t.cursor
	t.mu.Unlock()
	if _, spec, err := catalog.At(cursor); err == nil {
		y++
		drawText(t.screen, 2, y, fmt.Sprintf("> %d. %s", cursor+1, spec.Title()), styleCursor)
	}

	y += 2
	drawText(t.screen, 2, y, "1-9 or enter: play   +/-: music   [/]: effects   q: quit", styleDim)
}

func (t *Terminal) drawLevel(s level.Status, w *level.World) {
	width, _ := t.screen.Size()

	hud, err := execute(t.hud, t.hudData(s, w))
	if err != nil {
		hud = err.Error()
	}
	for i, line := range strings.Split(hud, "\n") {
		drawText(t.screen, 0, i, line, styleText)
	}

	y := boardTop + drawBoard(t.screen, 2, boardTop, w) + 1
	for _, line := range Wrap(s.Hint, width-2) {
		drawText(t.screen, 2, y, line, styleDim)
		y++
	}

	t.mu.Lock()
	events := slices.Clone(t.events)
	t.mu.Unlock()
	for _, line := range events {
		y++
		drawText(t.screen, 2, y, line, styleDim)
	}
}

type golemView struct {
	ID     string
	Side   int
	Synced bool
}

type hudData struct {
	level.Status
	Level       int
	Side        int
	Golems      []golemView
	Music       int
	Effects     int
	MusicBars   int
	EffectsBars int
}

func (t *Terminal) hudData(s level.Status, w *level.World) hudData {
	d := hudData{Status: s, Level: s.Index + 1, Side: w.Player.CurrentSide(), Music: 100, Effects: 100}
	for _, g := range w.Golems.All() {
		d.Golems = append(d.Golems, golemView{ID: g.ID(), Side: g.CurrentSide(), Synced: g.IsSynced()})
	}
	if t.mixer != nil {
		music, effects := t.mixer.Volumes()
		d.Music, d.Effects = int(math.Round(music*100)), int(math.Round(effects*100))
	}
	d.MusicBars, d.EffectsBars = d.Music/10, d.Effects/10
	return d
}
