package aspect

import "github.com/esimov/aspect/utils"

// Child is an element placed by a layout pass.
//
// Children are identified with ==, both by their container and as keys of the
// constraint Store, so implementations must be comparable: a value type holding
// a slice, map or func panics when used as a Child. Use pointer receivers.
type Child interface {
	// PrefWidth and PrefHeight report the preferred size of the child.
	// They are used to derive the aspect ratio when none is set explicitly.
	PrefWidth() float64
	PrefHeight() float64
	// ResizeRelocate applies the placement computed for the child,
	// relative to the top left corner of its container.
	ResizeRelocate(x, y, w, h float64)
}

// Driver is implemented by containers whose children are arranged by Arrange.
type Driver interface {
	// Children returns the managed children in their display order.
	Children() []Child
	// Size returns the current size of the container.
	Size() (w, h float64)
}

// Arrange runs one layout pass: every child of d is fitted independently
// against the container size, using the constraints found in s (which may be nil),
// and moved to the resulting rectangle.
//
// Degenerate input never fails. When the container has an empty or
// non-finite side the children are left at the container's size, and a child
// whose ratio cannot be resolved fills the container.
func Arrange(d Driver, s *Store) {
	w, h := d.Size()
	for _, c := range d.Children() {
		r := place(Size{W: w, H: h}, c, s)
		c.ResizeRelocate(r.X, r.Y, r.W, r.H)
	}
}

// place computes the rectangle of a single child, guarding the fitter's preconditions.
func place(container Size, c Child, s *Store) Rect {
	fill := Rect{W: container.W, H: container.H}
	if !Usable(container.W) || !Usable(container.H) {
		return fill
	}
	ratio, align := s.Constraint(c)
	ratio = Resolve(ratio, Size{W: c.PrefWidth(), H: c.PrefHeight()})
	if !Usable(ratio) {
		return fill
	}
	return Fit(container, ratio, align)
}

// Pane is a container which keeps the aspect ratio of its children.
// It owns the constraint store of its children and records when
// a new layout pass is required.
//
// A Pane is itself a Child, so panes can be nested: resizing a nested pane
// through ResizeRelocate lays out its own children right away.
type Pane struct {
	x, y          float64
	width, height float64

	children  []Child
	store     *Store
	dirty     bool
	listeners []func()
}

var (
	_ Driver = (*Pane)(nil)
	_ Child  = (*Pane)(nil)
)

// NewPane creates a pane of the given size holding children.
func NewPane(w, h float64, children ...Child) *Pane {
	p := &Pane{
		width:    w,
		height:   h,
		children: append([]Child(nil), children...),
		store:    NewStore(),
		dirty:    true,
	}
	p.store.Observe(func(c Child) {
		if p.contains(c) {
			p.RequestLayout()
		}
	})
	return p
}

// Children returns the managed children. The slice must not be modified.
func (p *Pane) Children() []Child {
	return p.children
}

// Size returns the current size of the pane.
func (p *Pane) Size() (float64, float64) {
	return p.width, p.height
}

// Position returns the offset of the pane inside its own container.
func (p *Pane) Position() (float64, float64) {
	return p.x, p.y
}

// Constraints gives access to the constraint store of the pane.
func (p *Pane) Constraints() *Store {
	return p.store
}

// Add appends children to the pane.
func (p *Pane) Add(children ...Child) {
	if len(children) == 0 {
		return
	}
	p.children = append(p.children, children...)
	p.RequestLayout()
}

// Remove detaches the child from the pane. Its constraints are kept,
// so they still apply if the child is added again.
func (p *Pane) Remove(c Child) bool {
	for i, ch := range p.children {
		if ch == c {
			p.children = append(p.children[:i], p.children[i+1:]...)
			p.RequestLayout()
			return true
		}
	}
	return false
}

// Resize changes the size of the pane.
func (p *Pane) Resize(w, h float64) {
	if w == p.width && h == p.height {
		return
	}
	p.width, p.height = w, h
	p.RequestLayout()
}

// SetAspectRatio sets the aspect ratio of c. A ratio which is not Usable clears it.
func (p *Pane) SetAspectRatio(c Child, ratio float64) {
	p.store.SetAspectRatio(c, ratio)
}

// AspectRatio returns the explicit aspect ratio of c, if any.
func (p *Pane) AspectRatio(c Child) (float64, bool) {
	return p.store.AspectRatio(c)
}

// SetAlignment sets the alignment of c.
func (p *Pane) SetAlignment(c Child, a Alignment) {
	p.store.SetAlignment(c, a)
}

// ClearAlignment resets the alignment of c to centered.
func (p *Pane) ClearAlignment(c Child) {
	p.store.ClearAlignment(c)
}

// Alignment returns the explicit alignment of c, if any.
func (p *Pane) Alignment(c Child) (Alignment, bool) {
	return p.store.Alignment(c)
}

// ClearConstraints removes every constraint of c.
func (p *Pane) ClearConstraints(c Child) {
	p.store.ClearConstraints(c)
}

// OnLayoutRequest registers fn to be called on every layout request.
// Hosts use it to schedule the next pass, i.e. invalidate their window.
func (p *Pane) OnLayoutRequest(fn func()) {
	p.listeners = append(p.listeners, fn)
}

// RequestLayout marks the pane as needing a layout pass and notifies the listeners.
func (p *Pane) RequestLayout() {
	p.dirty = true
	for _, fn := range p.listeners {
		fn()
	}
}

// NeedsLayout reports whether the pane changed since its last layout pass.
func (p *Pane) NeedsLayout() bool {
	return p.dirty
}

// Layout arranges the children of the pane.
func (p *Pane) Layout() {
	Arrange(p, p.store)
	p.dirty = false
}

// PrefWidth returns the largest preferred width among the children.
func (p *Pane) PrefWidth() float64 {
	var w float64
	for _, c := range p.children {
		w = utils.Max(w, c.PrefWidth())
	}
	return w
}

// PrefHeight returns the largest preferred height among the children.
func (p *Pane) PrefHeight() float64 {
	var h float64
	for _, c := range p.children {
		h = utils.Max(h, c.PrefHeight())
	}
	return h
}

// ResizeRelocate moves and resizes the pane, then lays out its children.
func (p *Pane) ResizeRelocate(x, y, w, h float64) {
	p.x, p.y = x, y
	p.Resize(w, h)
	p.Layout()
}

func (p *Pane) contains(c Child) bool {
	for _, ch := range p.children {
		if ch == c {
			return true
		}
	}
	return false
}
