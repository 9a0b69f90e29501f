package anim

import (
	"time"

	"github.com/pixil98/go-golem/internal/geom"
)

// Tween tracks normalized progress through a fixed duration. It holds no
// target of its own; callers map the eased value onto whatever they animate.
type Tween struct {
	Duration time.Duration
	Curve    geom.Curve

	elapsed time.Duration
}

func NewTween(d time.Duration, c geom.Curve) *Tween {
	if c == nil {
		c = geom.Linear
	}
	return &Tween{Duration: d, Curve: c}
}

// Step advances the tween and reports the eased value and whether the
// duration has been used up. A zero duration finishes on the first step.
func (t *Tween) Step(dt time.Duration) (float64, bool) {
	t.elapsed += dt
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		t.elapsed = t.Duration
		return t.curve()(1), true
	}
	return t.curve()(t.Raw()), false
}

// Raw is the un-eased fraction of the duration used so far.
func (t *Tween) Raw() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.Duration)
}

func (t *Tween) Done() bool {
	return t.elapsed >= t.Duration
}

func (t *Tween) Reset() {
	t.elapsed = 0
}

func (t *Tween) curve() geom.Curve {
	if t.Curve == nil {
		return geom.Linear
	}
	return t.Curve
}
