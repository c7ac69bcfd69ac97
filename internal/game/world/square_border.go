package world

import (
	"fmt"
	"math"
)

// Border returns the border installed facing dir, or nil for an unknown direction.
func (s *Square) Border(dir Direction) *Side {
	i := dir.index()
	if i < 0 {
		return nil
	}
	return s.slots[i]
}

// CanChangeBorder reports whether SetBorder may replace the square's borders.
func (s *Square) CanChangeBorder() bool {
	return !s.restricted
}

// DoorCount returns the number of door borders on the square.
func (s *Square) DoorCount() int {
	return s.doorCountExcept("")
}

func (s *Square) doorCountExcept(dir Direction) int {
	n := 0
	for i, side := range s.slots {
		if side != nil && side.Kind() == KindDoor && AllDirections[i] != dir {
			n++
		}
	}
	return n
}

// SetBorder installs a copy of b facing dir. If the current border is mirrored
// by a neighbour, the neighbour's opposite slot receives b as well and the two
// stay mirrored.
//
// Postcondition: On error neither square is modified; a pair that was
// mirrored stays mirrored with its previous border.
func (s *Square) SetBorder(b Border, dir Direction) error {
	if err := s.checkBorderChange(b, dir); err != nil {
		return err
	}
	s.applyBorderChange(b, dir)
	return nil
}

// checkBorderChange validates SetBorder without mutating anything.
func (s *Square) checkBorderChange(b Border, dir Direction) error {
	if !b.Valid() {
		return fmt.Errorf("set border: %w", ErrInvalidBorder)
	}
	if !dir.Valid() {
		return fmt.Errorf("set border on %q: %w", dir, ErrInvalidDirection)
	}
	if !s.CanChangeBorder() {
		return fmt.Errorf("set %s border of %s square: %w", dir, s.kind, ErrBorderLocked)
	}
	if !b.canLink(s, dir) {
		return fmt.Errorf("%s on %s: %w", b, dir, ErrIneligibleBorder)
	}
	adj := s.slots[dir.index()].Adjacent()
	if adj == nil {
		return nil
	}
	if !s.rules.SharedBorderEdits {
		return fmt.Errorf("set shared %s border: %w", dir, ErrBorderLocked)
	}
	n := adj.square
	if !n.CanChangeBorder() {
		return fmt.Errorf("set %s border shared with %s square: %w", dir, n.kind, ErrBorderLocked)
	}
	if !b.canLink(n, dir.Opposite()) {
		return fmt.Errorf("%s on neighbour's %s: %w", b, dir.Opposite(), ErrIneligibleBorder)
	}
	return nil
}

// applyBorderChange performs a SetBorder that checkBorderChange accepted.
func (s *Square) applyBorderChange(b Border, dir Direction) {
	i := dir.index()
	adj := s.slots[i].Adjacent()
	if adj == nil {
		s.slots[i] = newLoneSide(b, s, dir)
		return
	}
	n := adj.square
	mine, theirs := newMirroredPair(b, s, dir, n)
	s.slots[i] = mine
	n.slots[dir.Opposite().index()] = theirs
}

// resolveLink validates that s and other may be linked facing dir and returns
// the border they would share. Door eligibility is left to the caller, which
// sees every link an insertion creates.
func (s *Square) resolveLink(other *Square, dir Direction) (Border, error) {
	if other == nil {
		return Border{}, fmt.Errorf("link: %w", ErrNilArgument)
	}
	if !dir.Valid() {
		return Border{}, fmt.Errorf("link on %q: %w", dir, ErrInvalidDirection)
	}
	if s.dungeon == nil || other.dungeon == nil {
		return Border{}, fmt.Errorf("link: %w", ErrNotAttached)
	}
	if s.dungeon != other.dungeon {
		return Border{}, fmt.Errorf("link: %w", ErrDifferentDungeons)
	}
	if other.pos != dir.Move(s.pos) {
		return Border{}, fmt.Errorf("link %s to %s facing %s: %w", s.pos, other.pos, dir, ErrNotAdjacent)
	}
	mine := s.slots[dir.index()].Border()
	theirs := other.slots[dir.Opposite().index()].Border()
	return resolveBorders(mine, s.CanChangeBorder(), theirs, other.CanChangeBorder())
}

// link installs b as the mirrored border between s and other, then notifies
// both squares.
//
// Precondition: resolveLink(other, dir) returned b and its door placement was validated.
func (s *Square) link(other *Square, dir Direction, b Border) {
	i, j := dir.index(), dir.Opposite().index()
	s.slots[i].sever()
	other.slots[j].sever()
	mine, theirs := newMirroredPair(b, s, dir, other)
	s.slots[i] = mine
	other.slots[j] = theirs
	s.linked()
	other.linked()
}

// linked runs after every new link of s.
func (s *Square) linked() {
	if s.kind != KindRock {
		return
	}
	// rock humidity follows its neighbours
	total, count := 0.0, 0
	for _, side := range s.slots {
		if adj := side.Adjacent(); adj != nil {
			total += adj.square.humidity
			count++
		}
	}
	if count > 0 {
		s.humidity = roundHumidity(total / float64(count))
	}
}

// unlink severs every mirrored border of s and detaches it from its dungeon.
func (s *Square) unlink() {
	for _, side := range s.slots {
		side.sever()
	}
	s.dungeon = nil
	s.pos = Point{}
}

// MergeWith removes the border between s and other facing dir and evens out
// their climate: both take the mean humidity and a blended temperature
// weighted by the MergeWeight rule.
//
// Postcondition: On error neither square is modified.
func (s *Square) MergeWith(other *Square, dir Direction) error {
	if other == nil {
		return fmt.Errorf("merge: %w", ErrNilArgument)
	}
	if other == s {
		return fmt.Errorf("merge: %w", ErrSelfMerge)
	}
	if !dir.Valid() {
		return fmt.Errorf("merge on %q: %w", dir, ErrInvalidDirection)
	}
	for _, sq := range []*Square{s, other} {
		if !sq.CanChangeHumidity() || !sq.CanChangeTemperature() {
			return fmt.Errorf("merge %s square: %w", sq.kind, ErrLocked)
		}
	}

	opp := dir.Opposite()
	shared := false
	if adj := s.slots[dir.index()].Adjacent(); adj != nil && adj.square == other {
		shared = true
	}
	if err := s.checkBorderChange(NoBorder(), dir); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if !shared {
		if err := other.checkBorderChange(NoBorder(), opp); err != nil {
			return fmt.Errorf("merge: %w", err)
		}
	}

	humidity := roundHumidity((s.humidity + other.humidity) / 2)
	weight := 1 - s.rules.MergeWeight
	if humidity > 0 {
		weight = 2 * (1 - s.rules.MergeWeight) * humidity / (humidity + humidity)
	}
	blended := ((2-weight)*float64(other.temp) + weight*float64(s.temp)) / 2
	temp := int(math.Floor(blended + 0.5))
	if !IsValidTemperature(temp) {
		return fmt.Errorf("merged temperature %d: %w", temp, ErrInvalidTemperature)
	}

	s.applyBorderChange(NoBorder(), dir)
	if !shared {
		other.applyBorderChange(NoBorder(), opp)
	}
	s.humidity, other.humidity = humidity, humidity
	s.temp, other.temp = temp, temp
	return nil
}
