package tiles

import (
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/turn"
)

// NextLeveler accepts a request to move on to the next level.
type NextLeveler interface {
	LoadNext()
}

// LevelExit is a button target that finishes the level.
type LevelExit struct {
	levels NextLeveler
	sfx    audio.Player
}

func NewLevelExit(levels NextLeveler, sfx audio.Player) *LevelExit {
	if sfx == nil {
		sfx = audio.Silent{}
	}
	return &LevelExit{levels: levels, sfx: sfx}
}

func (e *LevelExit) TriggerAction() turn.Action {
	return turn.ActionFunc(func() {
		e.sfx.PlaySound(audio.EffectLevelComplete)
		e.levels.LoadNext()
	})
}

func (e *LevelExit) ReleaseAction() turn.Action {
	return turn.Nop
}
