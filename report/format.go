package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Score renders an integer with thousands separators
func Score(n int) string {
	return printer.Sprintf("%d", n)
}

// Seconds renders a duration in seconds with two decimals
func Seconds(s float64) string {
	return fmt.Sprintf("%.2fs", s)
}

// Clock renders whole seconds as m:ss
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ShortID truncates a match identifier for display
func ShortID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
