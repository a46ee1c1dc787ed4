package libxform

import "golang.org/x/exp/slices"

// A Scene is an ordered list of models with an optional selection.
type Scene struct {
	models   []*Model
	selected int
}

func (s *Scene) Models() []*Model {
	return s.models
}

func (s *Scene) Len() int {
	return len(s.models)
}

func (s *Scene) Add(m *Model) {
	s.models = append(s.models, m)
}

// Selected returns nil when the scene is empty.
func (s *Scene) Selected() *Model {
	if len(s.models) == 0 {
		return nil
	}
	return s.models[s.selected]
}

func (s *Scene) SelectedIndex() int {
	return s.selected
}

func (s *Scene) SelectNext() *Model {
	if len(s.models) == 0 {
		return nil
	}
	s.selected = (s.selected + 1) % len(s.models)
	return s.models[s.selected]
}

func (s *Scene) RemoveSelected() *Model {
	if len(s.models) == 0 {
		return nil
	}
	removed := s.models[s.selected]
	s.models = slices.Delete(s.models, s.selected, s.selected+1)
	if s.selected >= len(s.models) {
		s.selected = 0
	}
	return removed
}

func (s *Scene) Update(now float64) {
	for _, m := range s.models {
		m.Update(now)
	}
}
