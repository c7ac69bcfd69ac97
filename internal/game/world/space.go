package world

import (
	"fmt"

	"github.com/google/uuid"
)

// Space is the set of squares reachable from an origin square.
// Membership is by square identity.
type Space struct {
	members map[uuid.UUID]*Square
	order   []*Square
}

func newSpace() Space {
	return Space{members: make(map[uuid.UUID]*Square)}
}

// add inserts sq and reports whether it was new.
func (s *Space) add(sq *Square) bool {
	if _, ok := s.members[sq.id]; ok {
		return false
	}
	s.members[sq.id] = sq
	s.order = append(s.order, sq)
	return true
}

// Contains reports whether sq is a member.
func (s Space) Contains(sq *Square) bool {
	if sq == nil {
		return false
	}
	_, ok := s.members[sq.id]
	return ok
}

// Len returns the number of members.
func (s Space) Len() int {
	return len(s.order)
}

// Squares returns the members in visit order. Callers must not rely on it.
func (s Space) Squares() []*Square {
	res := make([]*Square, len(s.order))
	copy(res, s.order)
	return res
}

// IsSubsetOf reports whether every member of s is a member of other.
func (s Space) IsSubsetOf(other Space) bool {
	for id := range s.members {
		if _, ok := other.members[id]; !ok {
			return false
		}
	}
	return true
}

// Space returns the squares reachable from pos through passable borders.
//
// Precondition: pos is valid and occupied.
// Postcondition: the result contains the origin square.
func (d *Dungeon) Space(pos Point) (Space, error) {
	return d.space(pos, false)
}

// TeleSpace returns the squares reachable from pos through passable borders
// and teleport jumps. Teleports ignore borders.
//
// Precondition: pos is valid and occupied.
func (d *Dungeon) TeleSpace(pos Point) (Space, error) {
	return d.space(pos, true)
}

// space is an iterative depth-first flood fill.
func (d *Dungeon) space(pos Point, teleports bool) (Space, error) {
	if !pos.IsValid() {
		return Space{}, fmt.Errorf("space from %s: %w", pos, ErrInvalidPosition)
	}
	if !d.HasSquare(pos) {
		return Space{}, fmt.Errorf("space from %s: %w", pos, ErrNoSquare)
	}

	res := newSpace()
	stack := []Point{pos}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !d.InsideDimensions(p) {
			continue
		}
		sq, ok := d.squares[p]
		if !ok || !res.add(sq) {
			continue
		}
		for i, side := range sq.slots {
			next := AllDirections[i].Move(p)
			if side.CanPassThrough() && d.HasSquare(next) {
				stack = append(stack, next)
			}
		}
		if !teleports || sq.tele == nil {
			continue
		}
		for _, dest := range sq.tele.dest {
			if dest.dungeon == d {
				stack = append(stack, dest.pos)
			}
		}
	}
	return res, nil
}
