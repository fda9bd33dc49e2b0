// ABOUTME: Sparkline widget renders mini trend charts using block characters
// ABOUTME: Used on the dashboard for the monthly sales trend

package widgets

import (
	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks are the Unicode block characters for different heights
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a compact trend visualization. Values are resampled
// or left-padded to fit width; most recent value last.
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := fitToWidth(values, width)

	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = blockFor(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(result))
}

// fitToWidth resamples the values slice to the target width
func fitToWidth(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)
	if len(values) < width {
		copy(result[width-len(values):], values)
		return result
	}

	ratio := float64(len(values)) / float64(width)
	for i := 0; i < width; i++ {
		idx := int(float64(i) * ratio)
		if idx >= len(values) {
			idx = len(values) - 1
		}
		result[i] = values[idx]
	}
	return result
}

// blockFor maps a value within [lo, hi] to a block character
func blockFor(value, lo, hi float64) rune {
	if hi == lo {
		return sparkBlocks[len(sparkBlocks)/2]
	}
	idx := int((value - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparkBlocks) {
		idx = len(sparkBlocks) - 1
	}
	return sparkBlocks[idx]
}
