package director

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/telop/internal/telop"
)

const ScriptVersion = "1.0"

var (
	ErrEmptyScript = errors.New("script has no telops")
	ErrBadEntry    = errors.New("malformed telop entry")
)

// Script is a caption set as stored on disk.
type Script struct {
	Version   string   `yaml:"version" json:"version"`
	EffectSec *float64 `yaml:"effect_sec,omitempty" json:"effect_sec,omitempty"`
	Telops    []Telop  `yaml:"telops" json:"telops"`
}

// Telop is one script entry. It is written as the compact tuple
// [start, duration, text] and read from either that tuple or a
// {start, duration, text} mapping.
type Telop telop.Entry

// NewScript wraps a caption set for writing.
func NewScript(set telop.Set, effectSec float64) *Script {
	s := newScript(set)
	s.SetEffect(effectSec)
	return s
}

// newScript leaves the fade length unset so readers fall back to their own.
func newScript(set telop.Set) *Script {
	telops := make([]Telop, len(set))
	for i, e := range set {
		telops[i] = Telop(e)
	}
	return &Script{
		Version: ScriptVersion,
		Telops:  telops,
	}
}

// SetEffect stores an explicit fade length. Zero or less means instant fades.
func (s *Script) SetEffect(effectSec float64) {
	s.EffectSec = &effectSec
}

// Set returns the script entries as a caption set, in file order.
func (s *Script) Set() telop.Set {
	set := make(telop.Set, len(s.Telops))
	for i, t := range s.Telops {
		set[i] = telop.Entry(t)
	}
	return set
}

// Effect returns the script fade length, or fallback when the script sets none.
// An explicit effect_sec of 0 is kept.
func (s *Script) Effect(fallback float64) float64 {
	if s.EffectSec != nil {
		return *s.EffectSec
	}
	return fallback
}

func (t *Telop) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 3 {
			return fmt.Errorf("%w: line %d: want [start, duration, text], got %d items", ErrBadEntry, node.Line, len(node.Content))
		}
		var e telop.Entry
		if err := node.Content[0].Decode(&e.Start); err != nil {
			return fmt.Errorf("%w: line %d: start: %v", ErrBadEntry, node.Line, err)
		}
		if err := node.Content[1].Decode(&e.Duration); err != nil {
			return fmt.Errorf("%w: line %d: duration: %v", ErrBadEntry, node.Line, err)
		}
		if err := node.Content[2].Decode(&e.Text); err != nil {
			return fmt.Errorf("%w: line %d: text: %v", ErrBadEntry, node.Line, err)
		}
		*t = Telop(e)
		return nil
	case yaml.MappingNode:
		var e telop.Entry
		if err := node.Decode(&e); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadEntry, node.Line, err)
		}
		*t = Telop(e)
		return nil
	default:
		return fmt.Errorf("%w: line %d: unexpected node", ErrBadEntry, node.Line)
	}
}

func (t Telop) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []interface{}{t.Start, t.Duration, t.Text} {
		var item yaml.Node
		if err := item.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

func (t *Telop) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err == nil {
		if len(tuple) != 3 {
			return fmt.Errorf("%w: want [start, duration, text], got %d items", ErrBadEntry, len(tuple))
		}
		var e telop.Entry
		if err := json.Unmarshal(tuple[0], &e.Start); err != nil {
			return fmt.Errorf("%w: start: %v", ErrBadEntry, err)
		}
		if err := json.Unmarshal(tuple[1], &e.Duration); err != nil {
			return fmt.Errorf("%w: duration: %v", ErrBadEntry, err)
		}
		if err := json.Unmarshal(tuple[2], &e.Text); err != nil {
			return fmt.Errorf("%w: text: %v", ErrBadEntry, err)
		}
		*t = Telop(e)
		return nil
	}

	var e telop.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEntry, err)
	}
	*t = Telop(e)
	return nil
}

func (t Telop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Start, t.Duration, t.Text})
}
