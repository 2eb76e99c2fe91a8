package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arrow-rush/events"
)

func sampleSummary() events.MatchSummary {
	return events.MatchSummary{
		MatchID:         "3f2a9c1e-7b4d-4e8a-9c0f-1d2e3f4a5b6c",
		Score:           1250,
		Mistakes:        3,
		LinesCompleted:  4,
		AverageLineTime: 2.3,
		LineDurations:   []float64{2, 2.5, 1.5, 3.2},
		BestCombo:       17,
		Difficulty:      3,
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestTextGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleSummary()))
	newGoldie(t).Assert(t, "summary_text", buf.Bytes())
}

func TestTextEmptyGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, events.MatchSummary{Difficulty: 1}))
	newGoldie(t).Assert(t, "summary_empty_text", buf.Bytes())
}

func TestJSONGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleSummary()))
	newGoldie(t).Assert(t, "summary_json", buf.Bytes())
}

func TestJSONEmptyDurations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, events.MatchSummary{}))
	assert.Contains(t, buf.String(), `"line_durations": []`)
}

func TestWriteDispatch(t *testing.T) {
	var text, js bytes.Buffer
	require.NoError(t, Write(&text, FormatText, sampleSummary()))
	require.NoError(t, Write(&js, FormatJSON, sampleSummary()))
	assert.Contains(t, text.String(), "Final Score:       1,250")
	assert.Contains(t, js.String(), `"score": 1250`)

	assert.ErrorIs(t, Write(&text, Format(9), sampleSummary()), ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "0", Score(0))
	assert.Equal(t, "999", Score(999))
	assert.Equal(t, "1,234,567", Score(1234567))
	assert.Equal(t, "-1,500", Score(-1500))

	assert.Equal(t, "2.35s", Seconds(2.346))
	assert.Equal(t, "0.00s", Seconds(0))

	assert.Equal(t, "1:05", Clock(65))
	assert.Equal(t, "0:00", Clock(-4))

	assert.Equal(t, "3f2a9c1e", ShortID("3f2a9c1e-7b4d"))
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "-", ShortID(""))
}
