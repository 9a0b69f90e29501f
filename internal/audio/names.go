package audio

import "time"

// Effect groups
const (
	GroupLevelTransition = "level_transition"
	GroupDiceClack       = "dice_clack"
	GroupVolumeCheck     = "volume_check"
)

// Soundtrack
const (
	TrackMain = "main_track"
	TrackMenu = "menu_track"

	SoundtrackCrossfade = 2 * time.Second
)

// Individual effects
const (
	EffectLevelComplete = "level_complete"
	EffectButtonSuccess = "button_success"
	EffectButtonFailure = "button_failure"
	EffectDoorClose     = "door_close"
	EffectDoorOpen      = "door_open"
	EffectJumpPad       = "jump_pad_spring"
	EffectSync          = "die_sync"
	EffectDesync        = "die_desync"
)

// Player is the part of the audio manager game objects call into. Playback
// is fire-and-forget.
type Player interface {
	PlaySound(name string)
	PlayRandomGroupSound(group string)
}

// Silent discards every request.
type Silent struct{}

func (Silent) PlaySound(string)            {}
func (Silent) PlayRandomGroupSound(string) {}
