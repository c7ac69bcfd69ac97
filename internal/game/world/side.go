package world

import "fmt"

// edge is the canonical record behind one installed border. A mirrored border
// is a single edge seen from two squares, so its open/torn state cannot drift.
//
// Invariant: every non-nil entry of sides points back to this edge.
type edge struct {
	border Border
	sides  [2]*Side
}

// Side is an installed border as seen from one square slot.
type Side struct {
	edge   *edge
	square *Square
	dir    Direction
}

func newLoneSide(b Border, sq *Square, dir Direction) *Side {
	e := &edge{border: b}
	s := &Side{edge: e, square: sq, dir: dir}
	e.sides[0] = s
	return s
}

// newMirroredPair shares b between square a (facing dir) and its neighbour n.
func newMirroredPair(b Border, a *Square, dir Direction, n *Square) (*Side, *Side) {
	e := &edge{border: b}
	mine := &Side{edge: e, square: a, dir: dir}
	theirs := &Side{edge: e, square: n, dir: dir.Opposite()}
	e.sides = [2]*Side{mine, theirs}
	return mine, theirs
}

// Border returns a snapshot of the border's current state.
func (s *Side) Border() Border {
	return s.edge.border
}

// Kind returns the border variant.
func (s *Side) Kind() BorderKind {
	return s.edge.border.kind
}

// CanPassThrough reports whether a character can cross this border.
func (s *Side) CanPassThrough() bool {
	return s.edge.border.CanPassThrough()
}

// IsOpen is an alias of CanPassThrough.
func (s *Side) IsOpen() bool {
	return s.CanPassThrough()
}

// IsSlippery reports whether the border surface is slippery.
func (s *Side) IsSlippery() bool {
	return s.edge.border.IsSlippery()
}

// Square returns the square owning this slot.
func (s *Side) Square() *Square {
	return s.square
}

// Direction returns the face of Square this border occupies.
func (s *Side) Direction() Direction {
	return s.dir
}

// Adjacent returns the mirror of this border on the neighbouring square, or
// nil when the border is not shared.
//
// Postcondition: s.Adjacent() == nil || s.Adjacent().Adjacent() == s.
func (s *Side) Adjacent() *Side {
	for _, other := range s.edge.sides {
		if other != nil && other != s {
			return other
		}
	}
	return nil
}

// SetOpen opens or closes a door. Both mirrors observe the change.
func (s *Side) SetOpen(open bool) error {
	if s.edge.border.kind != KindDoor {
		return fmt.Errorf("open %s: %w", s.edge.border, ErrWrongBorderKind)
	}
	s.edge.border.open = open
	return nil
}

// Tear tears a plastic foil. Both mirrors observe the change.
func (s *Side) Tear() error {
	if s.edge.border.kind != KindPlasticFoil {
		return fmt.Errorf("tear %s: %w", s.edge.border, ErrWrongBorderKind)
	}
	s.edge.border.open = true
	return nil
}

// sever detaches s from its mirror. The mirror keeps a private copy of the
// current state.
func (s *Side) sever() {
	other := s.Adjacent()
	if other == nil {
		return
	}
	s.edge.sides = [2]*Side{s, nil}
	e := &edge{border: s.edge.border}
	e.sides[0] = other
	other.edge = e
}

// String describes the side, e.g. "north door(open)".
func (s *Side) String() string {
	return fmt.Sprintf("%s %s", s.dir, s.edge.border)
}
