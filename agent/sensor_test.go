package agent

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiusSensor(t *testing.T) {
	s := DefaultSensor()
	cases := []struct {
		name     string
		distance float64
		detect   bool
		lose     bool
	}{
		{"close", 10, true, false},
		{"edge", 35, true, false},
		{"band", 40, false, false},
		{"lose_edge", 41.9, false, false},
		{"far", 42.5, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Reading{Distance: c.distance, DetectionRadius: 35}
			assert.Equal(t, c.detect, s.Detect(r))
			assert.Equal(t, c.lose, s.Lose(r))
		})
	}
}

const halfRadiusScript = `
detect = distance <= radius / 2
lose = distance > radius * 2
`

func TestScriptSensor(t *testing.T) {
	s, err := NewScriptSensor([]byte(halfRadiusScript), zerolog.Nop())
	require.NoError(t, err)

	assert.False(t, s.Detect(Reading{Distance: 20, DetectionRadius: 35}))
	assert.True(t, s.Detect(Reading{Distance: 10, DetectionRadius: 35}))
	assert.False(t, s.Lose(Reading{Distance: 60, DetectionRadius: 35}))
	assert.True(t, s.Lose(Reading{Distance: 71, DetectionRadius: 35}))
}

func TestScriptSensorCompileError(t *testing.T) {
	_, err := NewScriptSensor([]byte("detect = "), zerolog.Nop())
	assert.Error(t, err)
}

func TestScriptSensorRuntimeErrorFallsBack(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewScriptSensor([]byte("x := 1\ndetect = x()"), zerolog.New(&buf))
	require.NoError(t, err)

	assert.True(t, s.Detect(Reading{Distance: 30, DetectionRadius: 35}))
	assert.True(t, s.Lose(Reading{Distance: 50, DetectionRadius: 35}))
	assert.Contains(t, buf.String(), "sensor script failed")
}

func TestScriptSensorDrivesAlien(t *testing.T) {
	s, err := NewScriptSensor([]byte(halfRadiusScript), zerolog.Nop())
	require.NoError(t, err)

	player := &fakePlayer{}
	player.loc.X = 30
	a := newTestAlien(t, Options{Player: player, Sensor: s})
	a.Update(tick, defaultTestBounds)
	assert.Equal(t, StateWander, a.StateName(), "30 is outside half the radius")

	player.loc = a.Location()
	player.loc.X += 10
	a.Update(tick, defaultTestBounds)
	assert.Equal(t, StatePursue, a.StateName())
}
