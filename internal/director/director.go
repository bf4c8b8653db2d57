package director

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ivlev/telop/internal/telop"
)

// Director lays out caption lines on a timeline.
type Director struct {
	MinDwell  float64 // Minimum time per caption (seconds)
	MaxDwell  float64 // Maximum time per caption (seconds)
	LeadIn    float64 // Empty time before the first caption
	Gap       float64 // Empty time between captions
	ByLength  bool    // Share time in proportion to caption length
	EffectSec float64
}

// NewDirector creates a Director with default settings.
func NewDirector() *Director {
	return &Director{
		MinDwell:  1.0,
		MaxDwell:  6.0,
		LeadIn:    0.5,
		Gap:       0.1,
		EffectSec: telop.DefaultEffectSec,
	}
}

// Generate times each non-blank line back to back so the captions fill
// totalDuration, then clamps each caption to [MinDwell, MaxDwell].
func (d *Director) Generate(lines []string, totalDuration float64) (*Script, error) {
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			texts = append(texts, l)
		}
	}
	if len(texts) == 0 {
		return nil, ErrEmptyScript
	}
	if totalDuration <= 0 {
		return nil, fmt.Errorf("invalid total duration %.2f", totalDuration)
	}

	dwells := d.calculateDwellTimes(texts, totalDuration)

	set := make(telop.Set, len(texts))
	current := d.LeadIn
	for i, text := range texts {
		set[i] = telop.Entry{Start: current, Duration: dwells[i], Text: text}
		current += dwells[i] + d.Gap
	}

	return NewScript(set, d.EffectSec), nil
}

func (d *Director) calculateDwellTimes(texts []string, totalDuration float64) []float64 {
	available := totalDuration - d.LeadIn - d.Gap*float64(len(texts)-1)
	if available <= 0 {
		available = totalDuration
	}

	weights := make([]float64, len(texts))
	sum := 0.0
	for i, text := range texts {
		w := 1.0
		if d.ByLength {
			w = float64(utf8.RuneCountInString(text))
		}
		weights[i] = w
		sum += w
	}

	dwells := make([]float64, len(texts))
	for i, w := range weights {
		dwell := available * w / sum
		if dwell < d.MinDwell {
			dwell = d.MinDwell
		}
		if d.MaxDwell > 0 && dwell > d.MaxDwell {
			dwell = d.MaxDwell
		}
		dwells[i] = dwell
	}
	return dwells
}
