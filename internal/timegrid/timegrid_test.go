package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact multiple unchanged", 10.25, 10.25},
		{"rounds down below midpoint", 10.1166, 10.0}, // 10:07
		{"rounds up above midpoint", 10.9333, 11.0},   // 10:56
		{"tie rounds up", 10.125, 10.25},
		{"zero", 0, 0},
		{"negative", -0.1, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Quantize(c.in), 1e-9)
		})
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	for h := WindowStart; h <= WindowEnd; h += 0.01 {
		q := Quantize(h)
		require.Equal(t, q, Quantize(q), "hour %f", h)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, WindowStart, Clamp(3.5))
	assert.Equal(t, WindowEnd, Clamp(23.0))
	assert.Equal(t, 12.5, Clamp(12.5))
}

func TestGridPositionRoundTrip(t *testing.T) {
	for i := 0; i <= CellCount; i++ {
		hour := WindowStart + float64(i)*SlotHours
		p := ToGridPosition(hour)
		require.InDelta(t, hour, FromGridPosition(p), 1e-9)
	}

	assert.Equal(t, 0.0, ToGridPosition(WindowStart))
	assert.Equal(t, 100.0, ToGridPosition(WindowEnd))
}

func TestCellMidpoint(t *testing.T) {
	assert.InDelta(t, 8.125, CellMidpoint(0), 1e-9)
	assert.InDelta(t, 20.875, CellMidpoint(CellCount-1), 1e-9)

	for i := 0; i < CellCount; i++ {
		mid := CellMidpoint(i)
		require.False(t, OnGrid(mid), "midpoint %f must not sit on a boundary", mid)
	}
}

func TestInWindow(t *testing.T) {
	assert.True(t, InWindow(8.0, 21.0))
	assert.True(t, InWindow(9.0, 9.25))
	assert.False(t, InWindow(7.75, 9.0))
	assert.False(t, InWindow(20.0, 21.25))
}

func TestQuantizerAbsoluteRoundTrip(t *testing.T) {
	q := NewQuantizer(540) // UTC+9

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	instant := q.Absolute(date, 9.5)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 30, 0, 0, time.UTC), instant)
	assert.InDelta(t, 9.5, q.LocalHour(instant), 1e-9)
	assert.Equal(t, date, q.LocalDate(instant))
}

func TestQuantizerLocalDateCrossesMidnight(t *testing.T) {
	q := NewQuantizer(540)

	// 20:00 UTC is already 05:00 the next local day
	instant := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), q.LocalDate(instant))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}
