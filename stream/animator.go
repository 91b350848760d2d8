package stream

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/matt-g-everett/animtx/motion"
)

// ErrPlaying is returned when the model is edited during playback.
var ErrPlaying = errors.New("animation is playing")

// Animator plays a model at its frame rate, stepping every shape whose
// time has come and rendering a frame per tick.
type Animator struct {
	mu        sync.Mutex
	model     *motion.Model
	renderer  Renderer
	clock     Clock
	scheduler Scheduler

	state   State
	timeMs  float64
	waiting []*motion.Mutation
	active  []*motion.Mutation

	cancel     func()
	generation uint64
	deadline   time.Time
}

// NewAnimator creates a stopped Animator for model.
func NewAnimator(model *motion.Model, renderer Renderer, clock Clock, scheduler Scheduler) *Animator {
	a := new(Animator)
	a.model = model
	a.renderer = renderer
	a.clock = clock
	a.scheduler = scheduler
	a.state = Stopped
	return a
}

// State returns the playback state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Time returns the playback time in milliseconds.
func (a *Animator) Time() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeMs
}

// Active returns the shapes stepped on the last tick.
func (a *Animator) Active() []*motion.Mutation {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*motion.Mutation, len(a.active))
	copy(out, a.active)
	return out
}

// Start plays from the current time when paused and from the first form
// of every shape otherwise. Starting while running does nothing.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Running {
		return
	}
	if a.state == Ended {
		a.reset()
	}
	if a.state == Stopped {
		a.timeMs = 0
		a.model.ResetForms()
		a.model.Timeline().SeekTime(0)
	}
	a.model.Select(-1)

	a.waiting = a.model.Mutations()
	a.active = a.active[:0]
	for _, m := range a.waiting {
		m.Visible = false
	}
	a.state = Running

	log.Infof("Playing from %vms", a.timeMs)
	a.generation++
	a.deadline = a.clock.Now()
	a.scheduleNext()
}

// Pause stops ticking and keeps every shape where it is. It only has an
// effect while running.
func (a *Animator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != Running {
		return
	}
	a.stopLoop()
	a.state = Paused
	a.showAll()
	a.render()
	log.Infof("Paused at %vms", a.timeMs)
}

// Reset stops playback and puts every shape back on its first form.
func (a *Animator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

func (a *Animator) reset() {
	a.stopLoop()
	a.state = Stopped
	a.timeMs = 0
	a.waiting, a.active = nil, nil
	a.model.ResetForms()
	a.model.Timeline().SeekTime(0)
	a.model.Select(-1)
	a.showAll()
	a.render()
}

// Seek scrubs every shape to timeMs. Playback resumes from there.
func (a *Animator) Seek(timeMs float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Running {
		return ErrPlaying
	}
	if timeMs < 0 {
		timeMs = 0
	}
	a.model.SeekAll(timeMs)
	a.timeMs = timeMs
	a.state = Paused
	a.showAll()
	a.render()
	return nil
}

// Edit runs fn on the model unless playback is running.
func (a *Animator) Edit(fn func(m *motion.Model) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Running {
		return ErrPlaying
	}
	err := fn(a.model)
	a.render()
	return err
}

// Replace stops playback and swaps in model.
func (a *Animator) Replace(model *motion.Model) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLoop()
	a.model = model
	a.reset()
}

// Tick advances playback by one frame. It does nothing unless running.
func (a *Animator) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != Running {
		return
	}
	a.step()
}

func (a *Animator) fire(generation uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if generation != a.generation || a.state != Running {
		return
	}
	a.step()
	if a.state == Running {
		a.scheduleNext()
	}
}

func (a *Animator) scheduleNext() {
	period := time.Duration(a.model.Period() * float64(time.Millisecond))
	a.deadline = a.deadline.Add(period)
	d := a.deadline.Sub(a.clock.Now())
	if d < 0 {
		d = 0
	}
	generation := a.generation
	a.cancel = a.scheduler.Schedule(d, func() { a.fire(generation) })
}

func (a *Animator) stopLoop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.generation++
}

// step runs one tick: shapes are shown and activated, stepped, then the
// cursor moves and the frame is rendered.
func (a *Animator) step() {
	waiting := a.waiting[:0]
	for _, m := range a.waiting {
		if m.Start() <= a.timeMs {
			m.Visible = true
		}
		if m.Time(m.Current()) <= a.timeMs {
			a.active = append(a.active, m)
		} else {
			waiting = append(waiting, m)
		}
	}
	a.waiting = waiting

	active := a.active[:0]
	for _, m := range a.active {
		if m.Advance() != motion.StepFinished {
			active = append(active, m)
		}
	}
	a.active = active

	timeline := a.model.Timeline()
	if timeline.Start() <= a.timeMs {
		timeline.Advance()
	}
	a.render()
	a.timeMs += a.model.Period()

	if len(a.waiting) == 0 && len(a.active) == 0 {
		a.stopLoop()
		a.state = Ended
		a.timeMs = 0
		a.showAll()
		log.Info("Animation ended")
	}
}

func (a *Animator) showAll() {
	for _, m := range a.model.Mutations() {
		m.Visible = true
	}
}

func (a *Animator) render() {
	if a.renderer == nil {
		return
	}
	a.renderer.Render(NewFrame(a.model, a.timeMs, a.state))
}
