package solarfx

import (
	"time"
)

// Clock is the elapsed-time source read by the shader sync pass.
type Clock interface {
	ElapsedSeconds() float32
}

// Time is the frame clock resource. Dt is the duration of the previous frame.
type Time struct {
	Start time.Time
	Time  time.Time
	Dt    time.Duration

	now func() time.Time
}

func NewTime(now func() time.Time) *Time {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Time{Start: t, Time: t, now: now}
}

// ElapsedSeconds is the time since the clock started, as of the last tick.
func (t *Time) ElapsedSeconds() float32 {
	return float32(t.Time.Sub(t.Start).Seconds())
}

func (t *Time) DtSeconds() float32 {
	return float32(t.Dt.Seconds())
}

func (t *Time) tick() {
	now := t.now()
	t.Dt = now.Sub(t.Time)
	t.Time = now
}

type TimeModule struct {
	// Now overrides the wall clock, for tests and offline rendering.
	Now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewTime(mod.Now))
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(t *Time) {
	t.tick()
}
