package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", emptyEnvFile(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// emptyEnvFile isolates commands from any .env next to the test binary
func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "arrow-rush", cmd.Use)
	assert.Contains(t, cmd.Long, "line timer")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"play", "simulate", "generate", "grade", "config"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	cfgFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfgFlag)
	assert.Equal(t, "c", cfgFlag.Shorthand)

	seed := cmd.PersistentFlags().Lookup("seed")
	require.NotNil(t, seed)
	assert.Equal(t, "0", seed.DefValue)
}

func TestPlayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	play, _, err := cmd.Find([]string{"play"})
	require.NoError(t, err)

	resume := play.Flags().Lookup("resume-new-line")
	require.NotNil(t, resume)
	assert.Equal(t, "true", resume.DefValue)
	assert.NotNil(t, play.Flags().Lookup("mute"))
	assert.NotNil(t, play.Flags().Lookup("strategy"))
}

func TestInvalidFormatRejected(t *testing.T) {
	_, err := execute(t, "--format", "xml", "generate")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestSimulateCommandJSON(t *testing.T) {
	out, err := execute(t, "simulate", "--seed", "7", "--match-seconds", "10",
		"--accuracy", "1", "--reaction", "100ms", "--format", "json")
	require.NoError(t, err)

	var s events.MatchSummary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Zero(t, s.Mistakes)
	assert.Positive(t, s.LinesCompleted)
	assert.NotEmpty(t, s.MatchID)
}

func TestSimulateCommandMetrics(t *testing.T) {
	out, err := execute(t, "simulate", "--seed", "3", "--match-seconds", "5", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "match.phase=ended")
	assert.Contains(t, out, "match.playing=false")
}

func TestSimulateCommandRejectsBadAccuracy(t *testing.T) {
	_, err := execute(t, "simulate", "--accuracy", "1.5")
	assert.ErrorIs(t, err, ErrInvalidSimulation)
}

func TestGenerateCommandJSON(t *testing.T) {
	out, err := execute(t, "generate", "--seed", "3", "-s", "mirror", "-n", "3", "-l", "4", "--format", "json")
	require.NoError(t, err)

	var lines []GeneratedLine
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, "mirror", l.Strategy)
		assert.Len(t, l.Steps, 4)
	}
}

func TestGenerateCommandText(t *testing.T) {
	out, err := execute(t, "generate", "--seed", "5", "-s", "rhythm", "-n", "2", "-l", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "  1  rhythm")
	assert.Contains(t, out, "  2  rhythm")
	assert.Contains(t, out, "accents ")
}

func TestGenerateCommandRejectsUnknownStrategy(t *testing.T) {
	_, err := execute(t, "generate", "-s", "zigzag")
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestGradeCommandText(t *testing.T) {
	out, err := execute(t, "grade", "--", "30ms", "-120ms", "250ms")
	require.NoError(t, err)
	assert.Contains(t, out, "30ms       perfect  x1.0  (30ms)")
	assert.Contains(t, out, "-120ms     late     x0.5  (120ms)")
	assert.Contains(t, out, "250ms      miss     x0.0  (250ms)")
}

func TestGradeCommandBeatGrid(t *testing.T) {
	out, err := execute(t, "grade", "--bpm", "120", "--format", "json", "520ms", "1160ms")
	require.NoError(t, err)

	var results []GradeResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, int64(1), results[0].Beat)
	assert.InDelta(t, 20, results[0].DeviationMs, 1e-9)
	assert.Equal(t, "perfect", results[0].Grade)

	assert.Equal(t, int64(2), results[1].Beat)
	assert.InDelta(t, 160, results[1].DeviationMs, 1e-9)
	assert.Equal(t, "late", results[1].Grade)
}

func TestGradeCommandCalibration(t *testing.T) {
	out, err := execute(t, "grade", "--offset", "20ms", "65ms")
	require.NoError(t, err)
	assert.Contains(t, out, "perfect")
}

func TestGradeCommandBadDuration(t *testing.T) {
	_, err := execute(t, "grade", "soon")
	assert.ErrorContains(t, err, `parse "soon"`)
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrow-rush.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  match_seconds: 42\n"), 0o644))

	out, err := execute(t, "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "match_seconds: 42")

	out, err = execute(t, "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, out, "ARROW_RUSH_SEED\n")
}
