package world

import (
	"fmt"

	"go.uber.org/zap"
)

// Node is anything that can be placed inside a Composite: a *Dungeon of any
// kind or another *Composite.
type Node interface {
	Base() *Dungeon
}

// Composite is a dungeon that also holds child dungeons at positions in its
// own frame. It keeps all the behaviour of Dungeon for its own squares.
//
// Invariant: no child's origin lies inside an earlier child's bounding box.
type Composite struct {
	Dungeon

	children map[Point]*Dungeon
	order    []Point
}

// NewComposite creates an empty composite dungeon.
func NewComposite(opts ...DungeonOption) *Composite {
	c := &Composite{children: make(map[Point]*Dungeon)}
	c.init(KindComposite, opts)
	c.composite = c
	return c
}

// Base returns the embedded dungeon, or nil for a nil composite.
func (c *Composite) Base() *Dungeon {
	if c == nil {
		return nil
	}
	return &c.Dungeon
}

// AddDungeon attaches child at pos.
//
// Precondition: child is unattached and pos has no negative component.
// Postcondition: On success child.Parent() == c and child.Pos() == pos. On
// error nothing is modified.
func (c *Composite) AddDungeon(pos Point, child Node) error {
	if child == nil || child.Base() == nil {
		return fmt.Errorf("add dungeon: %w", ErrNilArgument)
	}
	d := child.Base()
	if !pos.IsNonNegative() {
		return fmt.Errorf("add dungeon at %s: %w", pos, ErrInvalidPosition)
	}
	if d.parent != nil {
		return fmt.Errorf("add dungeon %s: %w", d.id, ErrAlreadyAttached)
	}
	for anc := c; anc != nil; anc = anc.parent {
		if &anc.Dungeon == d {
			return fmt.Errorf("add dungeon %s: %w", d.id, ErrCycle)
		}
	}
	if _, ok := c.children[pos]; ok {
		return fmt.Errorf("add dungeon at %s: %w", pos, ErrDungeonOverlap)
	}
	if other, ok := c.DungeonAt(pos); ok {
		c.logger.Warn("child dungeon overlaps",
			zap.Stringer("dungeon", c.id),
			zap.Stringer("child", d.id),
			zap.Stringer("existing", other.id),
			zap.Stringer("pos", pos),
		)
		return fmt.Errorf("add dungeon at %s inside %s: %w", pos, other.id, ErrDungeonOverlap)
	}

	c.children[pos] = d
	c.order = append(c.order, pos)
	d.parent = c
	d.pos = pos
	c.logger.Debug("child dungeon attached",
		zap.Stringer("dungeon", c.id),
		zap.Stringer("child", d.id),
		zap.String("kind", string(d.kind)),
		zap.Stringer("pos", pos),
	)
	return nil
}

// DungeonAt returns the dungeon whose bounding box contains pos. Nested
// composites are searched first, depth first, with pos translated into their
// frame; then the direct children are tested in insertion order.
//
// Postcondition: Returns (dungeon, true) if found, or (nil, false) otherwise.
func (c *Composite) DungeonAt(pos Point) (*Dungeon, bool) {
	for _, key := range c.order {
		nested, ok := c.children[key].AsComposite()
		if !ok {
			continue
		}
		local := pos.Sub(key)
		if !local.IsNonNegative() {
			continue
		}
		if d, ok := nested.DungeonAt(local); ok {
			return d, true
		}
	}
	for _, key := range c.order {
		d := c.children[key]
		if boxContains(key, d.dim, pos) {
			return d, true
		}
	}
	return nil, false
}

// boxContains reports whether p lies in [origin, origin+dim) on every axis.
func boxContains(origin Point, dim [3]int, p Point) bool {
	for i := range dim {
		lo := origin.axis(i)
		if c := p.axis(i); c < lo || c-lo >= dim[i] {
			return false
		}
	}
	return true
}

// Children returns the direct children in insertion order.
func (c *Composite) Children() []*Dungeon {
	res := make([]*Dungeon, 0, len(c.order))
	for _, key := range c.order {
		res = append(res, c.children[key])
	}
	return res
}

// LevelsAndShafts returns every level and shaft below c, depth first.
func (c *Composite) LevelsAndShafts() []*Dungeon {
	var res []*Dungeon
	for _, d := range c.Children() {
		switch d.kind {
		case KindLevel, KindShaft:
			res = append(res, d)
		case KindComposite:
			res = append(res, d.composite.LevelsAndShafts()...)
		}
	}
	return res
}

// Teleports returns the teleports of c's own squares and of every descendant.
func (c *Composite) Teleports() []*Teleport {
	res := c.Dungeon.Teleports()
	for _, d := range c.Children() {
		if nested, ok := d.AsComposite(); ok {
			res = append(res, nested.Teleports()...)
			continue
		}
		res = append(res, d.Teleports()...)
	}
	return res
}

// HotRockSquares returns the hot rock squares of c and of every descendant.
func (c *Composite) HotRockSquares() []*Square {
	res := c.Dungeon.HotRockSquares()
	for _, d := range c.Children() {
		if nested, ok := d.AsComposite(); ok {
			res = append(res, nested.HotRockSquares()...)
			continue
		}
		res = append(res, d.HotRockSquares()...)
	}
	return res
}
