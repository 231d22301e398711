package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the storyboard ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Warm gradient, one color per row.
	lines := []struct {
		text  string
		color string
	}{
		{"      _                   _                         _ ", "#fbbf24"},
		{"  ___| |_ ___  _ __ _   _| |__   ___   __ _ _ __ __| |", "#fb923c"},
		{" / __| __/ _ \\| '__| | | | '_ \\ / _ \\ / _` | '__/ _` |", "#f87171"},
		{" \\__ \\ || (_) | |  | |_| | |_) | (_) | (_| | | | (_| |", "#f472b6"},
		{" |___/\\__\\___/|_|   \\__, |_.__/ \\___/ \\__,_|_|  \\__,_|", "#c084fc"},
		{"                    |___/                              ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
