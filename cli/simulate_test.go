package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arrow-rush/config"
)

func simConfig(seed uint64, matchSeconds int) config.Config {
	cfg := config.Default()
	cfg.Seed = seed
	cfg.Engine.MatchSeconds = matchSeconds
	return cfg
}

func TestSimulationPerfectBot(t *testing.T) {
	sim, err := RunSimulation(simConfig(7, 10), SimulationParams{Accuracy: 1, Reaction: 100 * time.Millisecond, Matches: 1})
	require.NoError(t, err)
	require.Len(t, sim.Summaries, 1)

	s := sim.Summaries[0]
	assert.Zero(t, s.Mistakes)
	assert.GreaterOrEqual(t, s.LinesCompleted, 3)
	assert.GreaterOrEqual(t, s.Score, s.LinesCompleted*50)
	assert.Len(t, s.LineDurations, s.LinesCompleted)
}

func TestSimulationHopelessBot(t *testing.T) {
	sim, err := RunSimulation(simConfig(7, 20), SimulationParams{Accuracy: 0, Reaction: 250 * time.Millisecond, Matches: 1})
	require.NoError(t, err)

	s := sim.Summaries[0]
	assert.Zero(t, s.Score)
	assert.Zero(t, s.LinesCompleted)
	assert.Positive(t, s.Mistakes)
	assert.Zero(t, s.AverageLineTime)
}

func TestSimulationDeterministic(t *testing.T) {
	params := SimulationParams{Accuracy: 0.8, Reaction: 300 * time.Millisecond, Matches: 2}

	a, err := RunSimulation(simConfig(99, 15), params)
	require.NoError(t, err)
	b, err := RunSimulation(simConfig(99, 15), params)
	require.NoError(t, err)

	require.Len(t, a.Summaries, 2)
	for i := range a.Summaries {
		x, y := a.Summaries[i], b.Summaries[i]
		x.MatchID, y.MatchID = "", ""
		assert.Equal(t, x, y, "match %d", i)
	}
	assert.NotEqual(t, a.Summaries[0].MatchID, a.Summaries[1].MatchID)
}

func TestSimulationTrace(t *testing.T) {
	var trace bytes.Buffer
	_, err := RunSimulation(simConfig(1, 3), SimulationParams{Accuracy: 1, Reaction: 200 * time.Millisecond, Matches: 1, Trace: &trace})
	require.NoError(t, err)

	out := trace.String()
	assert.Contains(t, out, "event=match-start")
	assert.Contains(t, out, "event=new-line")
	assert.Contains(t, out, "event=game-over")
}

func TestSimulationParamsValidation(t *testing.T) {
	tests := []struct {
		name string
		p    SimulationParams
	}{
		{"accuracy low", SimulationParams{Accuracy: -0.1, Reaction: time.Second, Matches: 1}},
		{"accuracy high", SimulationParams{Accuracy: 1.1, Reaction: time.Second, Matches: 1}},
		{"reaction", SimulationParams{Accuracy: 1, Matches: 1}},
		{"matches", SimulationParams{Accuracy: 1, Reaction: time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunSimulation(config.Default(), tt.p)
			assert.ErrorIs(t, err, ErrInvalidSimulation)
		})
	}
}
