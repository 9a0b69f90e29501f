package audio

import "github.com/gopxl/beep"

// ramp scales a stream by a level that slides toward a target a fixed step
// per sample. All fields are guarded by the output lock.
type ramp struct {
	streamer beep.Streamer
	level    float64
	target   float64
	step     float64

	// onSilent runs once the level reaches zero on its way down.
	onSilent func()
}

func (r *ramp) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		r.advance()
		samples[i][0] *= r.level
		samples[i][1] *= r.level
	}
	return n, ok
}

func (r *ramp) Err() error { return r.streamer.Err() }

func (r *ramp) advance() {
	if r.level == r.target {
		return
	}
	if r.level < r.target {
		r.level = min(r.level+r.step, r.target)
	} else {
		r.level = max(r.level-r.step, r.target)
	}
	if r.level == 0 && r.onSilent != nil {
		fn := r.onSilent
		r.onSilent = nil
		fn()
	}
}

// slide moves toward target over n samples. Zero n jumps.
func (r *ramp) slide(target float64, n int) {
	r.target = target
	if n <= 0 {
		r.level = target
		r.step = 0
		return
	}
	diff := target - r.level
	if diff < 0 {
		diff = -diff
	}
	r.step = diff / float64(n)
}

// halt freezes the level where it is.
func (r *ramp) halt() {
	r.target = r.level
	r.step = 0
	r.onSilent = nil
}

func (r *ramp) moving() bool {
	return r.level != r.target
}
