package telop

import "math"

const (
	// DefaultEffectSec is the fade length used when none is configured.
	DefaultEffectSec = 0.5

	// MissRatio is what the sentinel ratio forms return when no entry is active.
	MissRatio = -1.0
)

// InRatio returns the fade-in progress at t: 0 at the entry start, 1 once
// effectSec seconds have elapsed, capped at 1. The second result is false
// when no entry is active at t. A non-positive effectSec means an instant fade.
func (s Set) InRatio(effectSec, t float64) (float64, bool) {
	e, ok := s.Find(t)
	if !ok {
		return 0, false
	}
	return inRatio(e, effectSec, t), true
}

// OutRatio returns the fade-out progress at t: 0 while more than effectSec
// seconds remain, rising to 1 at the entry end.
func (s Set) OutRatio(effectSec, t float64) (float64, bool) {
	e, ok := s.Find(t)
	if !ok {
		return 0, false
	}
	return outRatio(e, effectSec, t), true
}

// InEffectRatio is InRatio with MissRatio standing in for "no entry".
func (s Set) InEffectRatio(effectSec, t float64) float64 {
	r, ok := s.InRatio(effectSec, t)
	if !ok {
		return MissRatio
	}
	return r
}

// OutEffectRatio is OutRatio with MissRatio standing in for "no entry".
func (s Set) OutEffectRatio(effectSec, t float64) float64 {
	r, ok := s.OutRatio(effectSec, t)
	if !ok {
		return MissRatio
	}
	return r
}

// No lower clamp: Find guarantees t >= e.Start.
func inRatio(e Entry, effectSec, t float64) float64 {
	if effectSec <= 0 {
		return 1
	}
	return math.Min((t-e.Start)/effectSec, 1.0)
}

func outRatio(e Entry, effectSec, t float64) float64 {
	if effectSec <= 0 {
		return 0
	}
	return 1 - math.Min((e.End()-t)/effectSec, 1.0)
}

// Frame is the caption state at one point in time.
type Frame struct {
	Time    float64 `json:"time"`
	Text    string  `json:"text"`
	Active  bool    `json:"active"`
	In      float64 `json:"in"`
	Out     float64 `json:"out"`
	Opacity float64 `json:"opacity"`
}

// At evaluates the full caption state at t. Opacity follows the fade-in
// ratio, then falls with the fade-out ratio; for entries shorter than two
// fades both apply at once.
func (s Set) At(effectSec, t float64) Frame {
	e, ok := s.Find(t)
	if !ok {
		return Frame{Time: t}
	}
	in := inRatio(e, effectSec, t)
	out := outRatio(e, effectSec, t)
	return Frame{
		Time:    t,
		Text:    e.Text,
		Active:  true,
		In:      in,
		Out:     out,
		Opacity: Remap(in*(1-out), 0, 1),
	}
}
