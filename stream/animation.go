package stream

import "time"

// State is the playback state of an Animator.
type State int

const (
	// Stopped is the reset state with every shape on its first form.
	Stopped State = iota
	// Running means ticks are scheduled.
	Running
	// Paused keeps the playback time and every shape where it stopped.
	Paused
	// Ended is reached when no shape has anything left to play.
	Ended
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// A Renderer receives every frame an Animator produces. Render is called
// with the Animator locked and must not call back into it.
type Renderer interface {
	Render(f *Frame)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(f *Frame)

// Render calls fn(f).
func (fn RendererFunc) Render(f *Frame) { fn(f) }

// Clock tells the time ticks are measured against.
type Clock interface {
	Now() time.Time
}

// Scheduler runs fn once after d. The returned function cancels it.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// Schedule starts a timer for fn.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
