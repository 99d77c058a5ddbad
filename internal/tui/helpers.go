package tui

import "github.com/existflow/palette/internal/model"

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// clamp keeps i within [0, n)
func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// nextColor returns the palette color after c
func nextColor(c model.Color) model.Color {
	for i, p := range model.Palette {
		if p == c {
			return model.Palette[(i+1)%len(model.Palette)]
		}
	}
	return model.Palette[0]
}
