package editor

import "chameleon-be/pkg/writing"

// Selection is the four-dimension parameter state plus the dimension that
// up/down cycling currently affects.
type Selection struct {
	Tone      string            `json:"tone"`
	Purpose   string            `json:"purpose"`
	Genre     string            `json:"genre"`
	Structure string            `json:"structure"`
	Active    writing.Dimension `json:"active_dimension"`
}

func DefaultSelection() Selection {
	return Selection{
		Tone:      writing.DefaultTone,
		Purpose:   writing.DefaultPurpose,
		Genre:     writing.DefaultGenre,
		Structure: writing.DefaultStructure,
		Active:    writing.DimensionTone,
	}
}

// Value returns the current member of d.
func (s Selection) Value(d writing.Dimension) string {
	switch d {
	case writing.DimensionPurpose:
		return s.Purpose
	case writing.DimensionGenre:
		return s.Genre
	case writing.DimensionStructure:
		return s.Structure
	default:
		return s.Tone
	}
}

func (s *Selection) set(d writing.Dimension, v string) {
	switch d {
	case writing.DimensionPurpose:
		s.Purpose = v
	case writing.DimensionGenre:
		s.Genre = v
	case writing.DimensionStructure:
		s.Structure = v
	default:
		s.Tone = v
	}
}

// SwitchDimension moves the active dimension around the ring; +1 is "right".
func (s *Selection) SwitchDimension(step int) {
	s.Active = writing.NextDimension(s.Active, step)
}

// Cycle moves the active dimension's value; -1 is "up", +1 is "down".
// An unknown current value restarts from the first member.
func (s *Selection) Cycle(step int) {
	table, ok := writing.TableFor(s.Active)
	if !ok {
		return
	}
	idx := table.Index(s.Value(s.Active))
	if idx < 0 {
		s.set(s.Active, table.At(0).Value)
		return
	}
	s.set(s.Active, table.At(idx+step).Value)
}
