package aspect

// constraint is the record kept for a single child.
type constraint struct {
	ratio    float64
	align    Alignment
	hasRatio bool
	hasAlign bool
}

func (c constraint) empty() bool {
	return !c.hasRatio && !c.hasAlign
}

// Store keeps the aspect ratio and alignment constraints of children, keyed by child identity.
// Children must therefore be comparable, usually pointers.
//
// Every mutation notifies the registered observers exactly once, whether or not
// the stored value actually changed. A Store is not safe for concurrent use;
// like the layout pass reading it, it belongs to a single goroutine.
type Store struct {
	entries   map[Child]constraint
	observers []func(Child)
}

// NewStore creates an empty constraint store.
func NewStore() *Store {
	return &Store{
		entries: make(map[Child]constraint),
	}
}

// Observe registers fn to be called after every mutation of a child's constraints.
func (s *Store) Observe(fn func(Child)) {
	s.observers = append(s.observers, fn)
}

// SetAspectRatio sets the width / height ratio the child has to keep.
// A ratio which is not Usable removes the constraint, the ratio is
// then derived from the child's preferred size.
func (s *Store) SetAspectRatio(c Child, ratio float64) {
	e := s.entries[c]
	e.ratio, e.hasRatio = ratio, Usable(ratio)
	if !e.hasRatio {
		e.ratio = 0
	}
	s.put(c, e)
}

// AspectRatio returns the explicit aspect ratio of the child, if any.
func (s *Store) AspectRatio(c Child) (float64, bool) {
	e, ok := s.entries[c]
	if !ok || !e.hasRatio {
		return 0, false
	}
	return e.ratio, true
}

// SetAlignment sets the anchor of the child inside its container.
func (s *Store) SetAlignment(c Child, a Alignment) {
	e := s.entries[c]
	e.align, e.hasAlign = a, true
	s.put(c, e)
}

// ClearAlignment removes the alignment of the child, which then defaults to centered.
func (s *Store) ClearAlignment(c Child) {
	e := s.entries[c]
	e.align, e.hasAlign = Alignment{}, false
	s.put(c, e)
}

// Alignment returns the explicit alignment of the child, if any.
func (s *Store) Alignment(c Child) (Alignment, bool) {
	e, ok := s.entries[c]
	if !ok || !e.hasAlign {
		return Alignment{}, false
	}
	return e.align, true
}

// ClearConstraints removes both the aspect ratio and the alignment of the child.
func (s *Store) ClearConstraints(c Child) {
	s.put(c, constraint{})
}

// Constraint returns the values a layout pass works with: the explicit ratio
// (0 when absent) and the alignment (centered when absent).
func (s *Store) Constraint(c Child) (float64, Alignment) {
	if s == nil {
		return 0, Alignment{}
	}
	e := s.entries[c]
	return e.ratio, e.align
}

// Len returns the number of children holding at least one constraint.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) put(c Child, e constraint) {
	if e.empty() {
		delete(s.entries, c)
	} else {
		if s.entries == nil {
			s.entries = make(map[Child]constraint)
		}
		s.entries[c] = e
	}
	for _, fn := range s.observers {
		fn(c)
	}
}
