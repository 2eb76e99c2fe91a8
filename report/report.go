// Package report renders end-of-match summaries for terminals and tooling
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lixenwraith/arrow-rush/events"
)

// ErrUnknownFormat is returned for unrecognized output formats
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects the summary encoding
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// ParseFormat accepts "text" or "json", case-insensitive
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write encodes the summary in the requested format
func Write(w io.Writer, f Format, s events.MatchSummary) error {
	switch f {
	case FormatText:
		return Text(w, s)
	case FormatJSON:
		return JSON(w, s)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// Text writes a fixed-width human summary
func Text(w io.Writer, s events.MatchSummary) error {
	rows := [][2]string{
		{"Match", ShortID(s.MatchID)},
		{"Final Score", Score(s.Score)},
		{"Mistakes", Score(s.Mistakes)},
		{"Lines Completed", Score(s.LinesCompleted)},
		{"Average Line Time", Seconds(s.AverageLineTime)},
		{"Best Combo", Score(s.BestCombo)},
		{"Difficulty", fmt.Sprint(s.Difficulty)},
		{"Line Times", lineTimes(s.LineDurations)},
	}

	var b strings.Builder
	b.WriteString("GAME OVER\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-19s%s\n", r[0]+":", r[1])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes the summary as indented JSON; an absent duration list encodes as []
func JSON(w io.Writer, s events.MatchSummary) error {
	if s.LineDurations == nil {
		s.LineDurations = []float64{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func lineTimes(durations []float64) string {
	if len(durations) == 0 {
		return "-"
	}
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = fmt.Sprintf("%.2f", d)
	}
	return strings.Join(parts, " ")
}
