// Package telop looks up time-boxed captions ("telops") and computes their
// fade-in and fade-out progress for a given playback time.
package telop

// Entry is a caption shown during [Start, Start+Duration), in seconds.
type Entry struct {
	Start    float64 `yaml:"start" json:"start"`
	Duration float64 `yaml:"duration" json:"duration"`
	Text     string  `yaml:"text" json:"text"`
}

// End returns the exclusive end of the entry window.
func (e Entry) End() float64 {
	return e.Start + e.Duration
}

// Contains reports whether t falls inside the entry window.
func (e Entry) Contains(t float64) bool {
	return e.Start <= t && t < e.Start+e.Duration
}

// Set is an ordered sequence of entries. Ordering by start time is expected
// but not required; lookups scan in sequence order.
type Set []Entry

// Find returns the first entry, in sequence order, whose window contains t.
func (s Set) Find(t float64) (Entry, bool) {
	for _, e := range s {
		if e.Contains(t) {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup returns the caption text at t and whether any entry matched.
// Unlike Text it separates an empty caption from a miss.
func (s Set) Lookup(t float64) (string, bool) {
	e, ok := s.Find(t)
	if !ok {
		return "", false
	}
	return e.Text, true
}

// Text returns the caption text at t, or "" when nothing is active.
func (s Set) Text(t float64) string {
	text, _ := s.Lookup(t)
	return text
}

// End returns the latest entry end in the set, 0 for an empty set.
func (s Set) End() float64 {
	end := 0.0
	for _, e := range s {
		if e.End() > end {
			end = e.End()
		}
	}
	return end
}
