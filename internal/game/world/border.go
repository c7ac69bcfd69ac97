package world

import "fmt"

// BorderKind identifies the variant of a Border.
type BorderKind string

// Border kinds.
const (
	KindNoBorder    BorderKind = "none"
	KindWall        BorderKind = "wall"
	KindDoor        BorderKind = "door"
	KindPlasticFoil BorderKind = "plastic_foil"
)

// MaxDoors is the number of door borders a single square may carry.
const MaxDoors = 3

// Border describes what separates a square from its neighbour on one face.
// It is a value: SetBorder installs a fresh copy, never the caller's instance.
//
// The zero Border is invalid; build one with NoBorder, Wall, Door or PlasticFoil.
type Border struct {
	kind     BorderKind
	slippery bool
	open     bool
}

// NoBorder returns an empty, always passable border.
func NoBorder() Border {
	return Border{kind: KindNoBorder}
}

// Wall returns an impassable wall; slipperiness is fixed at construction.
func Wall(slippery bool) Border {
	return Border{kind: KindWall, slippery: slippery}
}

// Door returns a door that is passable while open.
func Door(open bool) Border {
	return Border{kind: KindDoor, open: open}
}

// PlasticFoil returns a foil sheet that becomes passable once torn.
func PlasticFoil(torn bool) Border {
	return Border{kind: KindPlasticFoil, open: torn}
}

// Kind returns the variant of b.
func (b Border) Kind() BorderKind {
	return b.kind
}

// Valid reports whether b was built by one of the constructors.
func (b Border) Valid() bool {
	switch b.kind {
	case KindNoBorder, KindWall, KindDoor, KindPlasticFoil:
		return true
	default:
		return false
	}
}

// CanPassThrough reports whether a character can cross the border.
func (b Border) CanPassThrough() bool {
	switch b.kind {
	case KindNoBorder:
		return true
	case KindDoor, KindPlasticFoil:
		return b.open
	default:
		return false
	}
}

// IsOpen is an alias of CanPassThrough.
func (b Border) IsOpen() bool {
	return b.CanPassThrough()
}

// IsSlippery reports whether the border surface is slippery. Only walls can be.
func (b Border) IsSlippery() bool {
	return b.kind == KindWall && b.slippery
}

// IsTorn reports whether b is a torn plastic foil.
func (b Border) IsTorn() bool {
	return b.kind == KindPlasticFoil && b.open
}

// Overridden reports whether other takes precedence over b when two
// neighbouring squares contribute different borders to the same face.
//
// Precedence: NoBorder < PlasticFoil < Door < Wall.
func (b Border) Overridden(other Border) bool {
	switch b.kind {
	case KindNoBorder:
		return true
	case KindPlasticFoil:
		return other.kind == KindWall || other.kind == KindDoor
	case KindDoor:
		return other.kind == KindWall
	default:
		return false
	}
}

// allowedWith reports whether b may occupy a slot facing dir on a square that
// already carries otherDoors doors in its other five slots.
func (b Border) allowedWith(dir Direction, otherDoors int) bool {
	if b.kind != KindDoor {
		return true
	}
	return dir != Floor && otherDoors < MaxDoors
}

// canLink reports whether b may be installed on sq facing dir.
func (b Border) canLink(sq *Square, dir Direction) bool {
	return b.allowedWith(dir, sq.doorCountExcept(dir))
}

// String returns a short description such as "door(open)".
func (b Border) String() string {
	switch b.kind {
	case KindWall:
		if b.slippery {
			return "wall(slippery)"
		}
		return "wall"
	case KindDoor:
		if b.open {
			return "door(open)"
		}
		return "door(closed)"
	case KindPlasticFoil:
		if b.open {
			return "plastic_foil(torn)"
		}
		return "plastic_foil"
	case KindNoBorder:
		return "none"
	default:
		return fmt.Sprintf("invalid(%q)", string(b.kind))
	}
}

// resolveBorders picks the border two newly adjacent squares will share.
// A square that cannot change its borders always keeps its own; otherwise
// the inserted square's border wins unless the neighbour's overrides it.
func resolveBorders(mine Border, mineFlexible bool, theirs Border, theirsFlexible bool) (Border, error) {
	switch {
	case mineFlexible && theirsFlexible:
		if mine.kind == theirs.kind || theirs.Overridden(mine) {
			return mine, nil
		}
		return theirs, nil
	case mineFlexible:
		return theirs, nil
	case theirsFlexible:
		return mine, nil
	case mine.kind == theirs.kind:
		return mine, nil
	default:
		return Border{}, fmt.Errorf("%s against %s: %w", mine, theirs, ErrIncompatibleBorders)
	}
}
