package animation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/animation"
)

func TestSchedule_StaggersByIndex(t *testing.T) {
	for i := range 5 {
		slot := animation.Bar.Schedule(i, 5)
		assert.Equal(t, time.Duration(i)*60*time.Millisecond, slot.Delay)
		assert.Equal(t, 400*time.Millisecond, slot.Duration)
	}

	claimed := animation.CompareClaimed.Schedule(2, 4)
	assert.Equal(t, 300*time.Millisecond, claimed.Delay)

	peak := animation.PeakMarker.Schedule(3, 24)
	assert.Equal(t, 1200*time.Millisecond+240*time.Millisecond, peak.Delay)
}

func TestSchedule_IsPure(t *testing.T) {
	a := animation.Heatmap.Schedule(7, 20)
	b := animation.Heatmap.Schedule(7, 20)
	assert.Equal(t, a.Delay, b.Delay)
	assert.Equal(t, a.Duration, b.Duration)
}

func TestSchedule_ClampsIndex(t *testing.T) {
	assert.Equal(t, animation.Bar.Schedule(2, 3).Delay, animation.Bar.Schedule(10, 3).Delay)
	assert.Equal(t, time.Duration(0), animation.Bar.Schedule(-1, 3).Delay)
	assert.Equal(t, 520*time.Millisecond, animation.Bar.Total(3))
	assert.Equal(t, time.Duration(0), animation.Bar.Total(0))
}

func TestSlot_Progress(t *testing.T) {
	slot := animation.Timing{Stagger: 100 * time.Millisecond, Duration: 200 * time.Millisecond, Easing: animation.Linear}.Schedule(1, 3)

	assert.Equal(t, 0.0, slot.Progress(0))
	assert.Equal(t, 0.0, slot.Progress(100*time.Millisecond))
	assert.InDelta(t, 0.5, slot.Progress(200*time.Millisecond), 1e-9)
	assert.Equal(t, 1.0, slot.Progress(300*time.Millisecond))
	assert.Equal(t, 1.0, slot.Progress(time.Hour))
}

func TestEasing_Endpoints(t *testing.T) {
	easings := map[string]animation.Easing{
		"linear":   animation.Linear,
		"outcubic": animation.EaseOutCubic,
		"standard": animation.Standard,
		"smooth":   animation.Smooth,
	}

	for name, e := range easings {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, e(0), 1e-6)
			assert.InDelta(t, 1, e(1), 1e-6)

			prev := 0.0
			for x := 0.0; x <= 1; x += 0.05 {
				v := e(x)
				assert.GreaterOrEqual(t, v+1e-6, prev)
				prev = v
			}
		})
	}
}

func TestCubicBezier_LinearControlPoints(t *testing.T) {
	e := animation.CubicBezier(0, 0, 1, 1)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.8} {
		assert.InDelta(t, x, e(x), 1e-4)
	}
}

func TestEaseOutCubic_Decelerates(t *testing.T) {
	assert.Greater(t, animation.EaseOutCubic(0.5), 0.5)
	assert.InDelta(t, 0.875, animation.EaseOutCubic(0.5), 1e-9)
}

func TestClock(t *testing.T) {
	assert.Equal(t, 1.0, animation.Settled.At(animation.Heatmap, 99, 100))
	assert.Equal(t, 0.0, animation.Clock(0).At(animation.Heatmap, 1, 100))
	assert.InDelta(t, 5.0, animation.Interpolate(0, 10, 0.5), 1e-9)
}

func TestSequence_RestartSupersedesProgress(t *testing.T) {
	t0 := time.Unix(1000, 0)
	seq := animation.NewSequence(t0)
	seq.Extend(animation.Bar.Total(3))

	now := t0.Add(time.Second)
	assert.False(t, seq.Running(now))
	assert.Nil(t, seq.TickCmd(now))
	assert.Equal(t, 1.0, seq.Clock(now).At(animation.Bar, 0, 3))

	seq.Restart(now)
	assert.True(t, seq.Running(now))
	require.NotNil(t, seq.TickCmd(now))
	assert.Equal(t, 0.0, seq.Clock(now).At(animation.Bar, 0, 3))
	assert.Equal(t, animation.Clock(0), seq.Clock(now.Add(-time.Second)))
}
