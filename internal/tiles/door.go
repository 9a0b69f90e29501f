package tiles

import (
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
)

// Door blocks its cell while closed. A die standing in the doorway keeps it
// from closing; the close is retried on the next world turn until it works.
type Door struct {
	id       string
	body     *space.Body
	space    *space.Space
	requeuer turn.Requeuer
	sfx      audio.Player

	// set by a release, cleared by a trigger; a pending close only goes
	// through while it is set
	wantClosed bool
}

// NewDoor adds the door's obstacle body at pos, the cell a die would occupy.
func NewDoor(id string, pos geom.Vec, open bool, sp *space.Space, requeuer turn.Requeuer, sfx audio.Player) (*Door, error) {
	if sfx == nil {
		sfx = audio.Silent{}
	}
	d := &Door{
		id:       id,
		space:    sp,
		requeuer: requeuer,
		sfx:      sfx,
		body: &space.Body{
			ID:       "door:" + id,
			Layer:    space.LayerObstacle,
			Position: pos,
			Disabled: open,
		},
	}
	d.body.Owner = d
	if err := sp.Add(d.body); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Door) ID() string {
	return d.id
}

func (d *Door) Position() geom.Vec {
	return d.body.Position
}

func (d *Door) IsOpen() bool {
	return d.body.Disabled
}

func (d *Door) producer() string {
	return "door:" + d.id
}

// TriggerAction opens the door and cancels any close still waiting on the
// doorway.
func (d *Door) TriggerAction() turn.Action {
	return turn.ActionFunc(func() {
		d.wantClosed = false
		if d.IsOpen() {
			return
		}
		d.space.SetDisabled(d.body, true)
		d.sfx.PlaySound(audio.EffectDoorOpen)
	})
}

// ReleaseAction closes the door, or schedules another attempt if the
// doorway is occupied.
func (d *Door) ReleaseAction() turn.Action {
	return turn.ActionFunc(func() {
		d.wantClosed = true
		d.tryClose()
	})
}

func (d *Door) tryClose() {
	if !d.wantClosed || !d.IsOpen() {
		return
	}
	if _, blocked := d.space.Occupant(d.Position(), space.LayerDie); blocked {
		d.requeuer.RequeueActionForNextTurn(d.producer(), turn.ActionFunc(d.tryClose))
		return
	}
	d.space.SetDisabled(d.body, false)
	d.sfx.PlaySound(audio.EffectDoorClose)
}
