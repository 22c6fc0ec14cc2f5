package solarfx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced wall clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTimeModule(t *testing.T) {
	clock := newFakeClock()
	app := NewAppBuilder().UseModule(TimeModule{Now: clock.Now}).Build()

	tm, ok := Resource[Time](app)
	require.True(t, ok)
	assert.Zero(t, tm.ElapsedSeconds())

	clock.advance(500 * time.Millisecond)
	app.Tick()
	assert.InDelta(t, 0.5, tm.ElapsedSeconds(), 1e-6)
	assert.InDelta(t, 0.5, tm.DtSeconds(), 1e-6)

	clock.advance(250 * time.Millisecond)
	app.Tick()
	assert.InDelta(t, 0.75, tm.ElapsedSeconds(), 1e-6)
	assert.InDelta(t, 0.25, tm.DtSeconds(), 1e-6)
}

func TestNewTime_DefaultsToWallClock(t *testing.T) {
	tm := NewTime(nil)
	tm.tick()
	assert.GreaterOrEqual(t, tm.ElapsedSeconds(), float32(0))
}
