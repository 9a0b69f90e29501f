package display

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-golem/internal/dice"
	"github.com/pixil98/go-golem/internal/level"
	"github.com/pixil98/go-golem/internal/storage"
	"github.com/pixil98/go-golem/internal/turn"
	"github.com/pixil98/go-testutil"
)

const frame = 16 * time.Millisecond

type fakeMixer struct {
	music, effects float64
	groups         []string
}

func (f *fakeMixer) PlaySound(string) {}
func (f *fakeMixer) PlayRandomGroupSound(group string) {
	f.groups = append(f.groups, group)
}
func (f *fakeMixer) Volumes() (float64, float64) { return f.music, f.effects }
func (f *fakeMixer) SetVolumes(music, effects float64) {
	f.music, f.effects = music, effects
}

type fakeStore struct {
	music, effects float64
	loads          int
	err            error
}

func (f *fakeStore) Volumes(context.Context) (float64, float64, error) {
	f.loads++
	return f.music, f.effects, f.err
}
func (f *fakeStore) SetMusicVolume(_ context.Context, v float64) error {
	f.music = v
	return f.err
}
func (f *fakeStore) SetEffectsVolume(_ context.Context, v float64) error {
	f.effects = v
	return f.err
}

type fixture struct {
	screen tcell.SimulationScreen
	levels *level.Manager
	input  *dice.Latch
	mixer  *fakeMixer
	store  *fakeStore
	term   *Terminal
	quits  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 24)

	store, err := storage.NewFileStore[*level.Spec]("../../assets/levels")
	if err != nil {
		t.Fatalf("loading levels: %v", err)
	}

	f := &fixture{
		screen: screen,
		input:  &dice.Latch{},
		mixer:  &fakeMixer{music: 0.5, effects: 0.5},
		store:  &fakeStore{music: 0.5, effects: 0.5},
	}
	f.levels = level.NewManager(storage.NewCatalog[*level.Spec](store), level.Deps{Input: f.input}, level.WithTransition(0))
	f.term, err = NewTerminal(screen, f.levels, f.input,
		WithMixer(f.mixer),
		WithVolumeStore(f.store),
		WithQuit(func() { f.quits++ }),
	)
	if err != nil {
		t.Fatalf("new terminal: %v", err)
	}
	return f
}

func (f *fixture) tick(t *testing.T) {
	t.Helper()
	if err := f.levels.Tick(frame); err != nil {
		t.Fatalf("level tick: %v", err)
	}
	if err := f.term.Tick(frame); err != nil {
		t.Fatalf("terminal tick: %v", err)
	}
}

func (f *fixture) key(k tcell.Key, r rune) bool {
	return f.term.HandleEvent(context.Background(), tcell.NewEventKey(k, r, tcell.ModNone))
}

func (f *fixture) playerX() int {
	x := -1
	f.levels.View(func(_ level.Status, w *level.World) {
		if w != nil {
			x = w.Player.Position().X
		}
	})
	return x
}

func (f *fixture) row(y int) string {
	cells, w, _ := f.screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func (f *fixture) at(x, y int) rune {
	return []rune(f.row(y))[x]
}

func (f *fixture) screenText() string {
	_, _, h := f.screen.GetContents()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = f.row(y)
	}
	return strings.Join(rows, "\n")
}

func TestTerminal_Menu(t *testing.T) {
	f := newFixture(t)
	f.tick(t)

	text := f.screenText()
	for _, want := range []string{"G O L E M", "1. First Roll", "2. Shadow", "> 1. First Roll"} {
		if !strings.Contains(text, want) {
			t.Errorf("menu missing %q:\n%s", want, text)
		}
	}
}

func TestTerminal_MenuKeys(t *testing.T) {
	tests := map[string]struct {
		keys     func(f *fixture) bool
		expMode  level.Mode
		expIndex int
		expQuit  bool
	}{
		"digit loads": {
			keys:     func(f *fixture) bool { return f.key(tcell.KeyRune, '2') },
			expMode:  level.ModePlaying,
			expIndex: 1,
		},
		"digit out of range": {
			keys:     func(f *fixture) bool { return f.key(tcell.KeyRune, '9') },
			expMode:  level.ModeMenu,
			expIndex: -1,
		},
		"cursor and enter": {
			keys: func(f *fixture) bool {
				f.key(tcell.KeyDown, 0)
				f.key(tcell.KeyDown, 0)
				return f.key(tcell.KeyEnter, 0)
			},
			expMode:  level.ModePlaying,
			expIndex: 2,
		},
		"cursor wraps": {
			keys: func(f *fixture) bool {
				f.key(tcell.KeyUp, 0)
				return f.key(tcell.KeyEnter, 0)
			},
			expMode:  level.ModePlaying,
			expIndex: 2,
		},
		"escape quits": {
			keys:     func(f *fixture) bool { return f.key(tcell.KeyEscape, 0) },
			expMode:  level.ModeMenu,
			expIndex: -1,
			expQuit:  true,
		},
		"q quits": {
			keys:     func(f *fixture) bool { return f.key(tcell.KeyRune, 'q') },
			expMode:  level.ModeMenu,
			expIndex: -1,
			expQuit:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.tick(t)

			keepGoing := tt.keys(f)
			f.tick(t)

			s := f.levels.Status()
			testutil.AssertEqual(t, "quit", !keepGoing, tt.expQuit)
			testutil.AssertEqual(t, "mode", s.Mode, tt.expMode)
			testutil.AssertEqual(t, "index", s.Index, tt.expIndex)
		})
	}
}

func TestTerminal_PlayingKeys(t *testing.T) {
	tests := map[string]struct {
		key     tcell.Key
		r       rune
		expAxes dice.Axes
	}{
		"arrow up":    {key: tcell.KeyUp, expAxes: dice.Axes{Vertical: 1}},
		"arrow down":  {key: tcell.KeyDown, expAxes: dice.Axes{Vertical: -1}},
		"arrow right": {key: tcell.KeyRight, expAxes: dice.Axes{Horizontal: 1}},
		"arrow left":  {key: tcell.KeyLeft, expAxes: dice.Axes{Horizontal: -1}},
		"w":           {key: tcell.KeyRune, r: 'w', expAxes: dice.Axes{Vertical: 1}},
		"a":           {key: tcell.KeyRune, r: 'a', expAxes: dice.Axes{Horizontal: -1}},
		"s":           {key: tcell.KeyRune, r: 's', expAxes: dice.Axes{Vertical: -1}},
		"d":           {key: tcell.KeyRune, r: 'd', expAxes: dice.Axes{Horizontal: 1}},
		"other":       {key: tcell.KeyRune, r: 'x'},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.levels.Load(0)
			f.tick(t)

			f.key(tt.key, tt.r)

			testutil.AssertEqual(t, "axes", f.input.Read(), tt.expAxes)
		})
	}
}

func TestTerminal_RestartAndMenu(t *testing.T) {
	f := newFixture(t)
	f.levels.Load(0)
	f.tick(t)

	f.key(tcell.KeyRight, 0)
	for i := 0; i < 60; i++ {
		f.tick(t)
	}
	testutil.AssertEqual(t, "moved", f.playerX(), 2)

	f.key(tcell.KeyRune, 'r')
	f.tick(t)
	testutil.AssertEqual(t, "restarted", f.playerX(), 1)
	testutil.AssertEqual(t, "restarted index", f.levels.Status().Index, 0)

	testutil.AssertEqual(t, "escape keeps running", f.key(tcell.KeyEscape, 0), true)
	f.tick(t)
	testutil.AssertEqual(t, "mode", f.levels.Status().Mode, level.ModeMenu)
	testutil.AssertEqual(t, "quits", f.quits, 0)
}

func TestTerminal_DrawLevel(t *testing.T) {
	f := newFixture(t)
	f.levels.Load(0)
	f.tick(t)

	// first-roll: player at (1,1), goal plate needing a 3 at (5,1), four rows deep
	y := boardTop + 4 - 1 - 1
	testutil.AssertEqual(t, "player", f.at(2+1*cellWidth, y), '1')
	testutil.AssertEqual(t, "goal", f.at(2+5*cellWidth, y), '3')
	testutil.AssertEqual(t, "wall", f.at(2, boardTop), '#')

	text := f.screenText()
	for _, want := range []string{"First Roll (1/3)", "Turn ", "Music 50%", "Land on the plate"} {
		if !strings.Contains(text, want) {
			t.Errorf("hud missing %q:\n%s", want, text)
		}
	}
}

func TestTerminal_Volume(t *testing.T) {
	tests := map[string]struct {
		start      [2]float64
		r          rune
		expMusic   float64
		expEffects float64
	}{
		"music up":     {start: [2]float64{0.5, 0.5}, r: '+', expMusic: 0.6, expEffects: 0.5},
		"music down":   {start: [2]float64{0.5, 0.5}, r: '-', expMusic: 0.4, expEffects: 0.5},
		"effects up":   {start: [2]float64{0.5, 0.5}, r: ']', expMusic: 0.5, expEffects: 0.6},
		"effects down": {start: [2]float64{0.5, 0.5}, r: '[', expMusic: 0.5, expEffects: 0.4},
		"clamped high": {start: [2]float64{1, 1}, r: '+', expMusic: 1, expEffects: 1},
		"clamped low":  {start: [2]float64{0, 0}, r: '[', expMusic: 0, expEffects: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.mixer.music, f.mixer.effects = tt.start[0], tt.start[1]

			testutil.AssertEqual(t, "handled", f.key(tcell.KeyRune, tt.r), true)

			testutil.AssertEqual(t, "music", f.mixer.music, tt.expMusic)
			testutil.AssertEqual(t, "effects", f.mixer.effects, tt.expEffects)
			testutil.AssertEqual(t, "saved music", f.store.music, tt.expMusic)
			testutil.AssertEqual(t, "saved effects", f.store.effects, tt.expEffects)
			testutil.AssertEqual(t, "check sounds", len(f.mixer.groups), 1)
		})
	}
}

func TestTerminal_MenuLoadsVolumes(t *testing.T) {
	f := newFixture(t)
	f.store.music, f.store.effects = 0.3, 0.7

	f.tick(t)
	f.tick(t)

	testutil.AssertEqual(t, "loads", f.store.loads, 1)
	testutil.AssertEqual(t, "music", f.mixer.music, 0.3)
	testutil.AssertEqual(t, "effects", f.mixer.effects, 0.7)

	f.levels.Load(0)
	f.tick(t)
	f.levels.ReturnToMenu()
	f.tick(t)
	testutil.AssertEqual(t, "reloaded", f.store.loads, 2)
}

func TestTerminal_MenuVolumeLoadError(t *testing.T) {
	f := newFixture(t)
	f.store.music, f.store.effects = 0.1, 0.1
	f.store.err = errors.New("disk gone")

	f.tick(t)

	testutil.AssertEqual(t, "music untouched", f.mixer.music, 0.5)
}

func TestTerminal_Record(t *testing.T) {
	f := newFixture(t)

	f.term.Record(turn.Event{Kind: turn.EventPhaseChanged, Turn: 1})
	for i := 0; i < 6; i++ {
		f.term.Record(turn.Event{Kind: turn.EventActionRequeued, Turn: uint64(i), Producer: "door:gate", Retries: i})
	}

	testutil.AssertEqual(t, "kept", len(f.term.events), maxEventLines)
	testutil.AssertEqual(t, "newest", f.term.events[maxEventLines-1], "turn 5: door:gate waiting (retry 5)")
}

func TestTerminal_StartQuits(t *testing.T) {
	f := newFixture(t)

	done := make(chan error, 1)
	go func() { done <- f.term.Start(context.Background()) }()
	f.screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone))

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("terminal did not stop")
	}
	testutil.AssertEqual(t, "quits", f.quits, 1)
}

func TestWrap(t *testing.T) {
	lines := Wrap("roll the die onto the plate that shows a three", 20)
	testutil.AssertEqual(t, "lines", len(lines), 3)
	testutil.AssertEqual(t, "first", lines[0], "roll the die onto")
	testutil.AssertEqual(t, "empty", len(Wrap("", 20)), 0)
}
