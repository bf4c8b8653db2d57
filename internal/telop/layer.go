package telop

// Layer binds a caption set to a playback clock, for callers that evaluate
// "now" rather than an explicit time.
type Layer struct {
	Set       Set
	Clock     Clock
	EffectSec float64
}

// NewLayer returns a layer using DefaultEffectSec.
func NewLayer(set Set, clock Clock) *Layer {
	return &Layer{Set: set, Clock: clock, EffectSec: DefaultEffectSec}
}

func (l *Layer) Now() float64 {
	if l.Clock == nil {
		return 0
	}
	return l.Clock.Now()
}

func (l *Layer) Text() string {
	return l.Set.Text(l.Now())
}

func (l *Layer) InRatio() (float64, bool) {
	return l.Set.InRatio(l.EffectSec, l.Now())
}

func (l *Layer) OutRatio() (float64, bool) {
	return l.Set.OutRatio(l.EffectSec, l.Now())
}

func (l *Layer) Frame() Frame {
	return l.Set.At(l.EffectSec, l.Now())
}
