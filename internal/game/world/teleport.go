package world

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Teleporter is the capability of sending an occupant to one of a set of
// destination squares.
type Teleporter interface {
	// AddDest registers a destination.
	AddDest(sq *Square) error
	// Dest returns the destinations in registration order.
	Dest() []*Square
	// Teleport picks a destination uniformly at random.
	//
	// Postcondition: Returns (nil, false) when there are no destinations.
	Teleport() (*Square, bool)
}

// Teleport is the Teleporter carried by teleport squares.
type Teleport struct {
	owner *Square
	dest  []*Square
	src   dice.Source
}

var _ Teleporter = (*Teleport)(nil)

// NewTeleport creates a teleport square. Destinations are drawn from src; a
// nil src selects dice.NewCryptoSource.
func NewTeleport(temp int, humidity float64, src dice.Source, opts ...SquareOption) (*Square, error) {
	s, err := newSquare(KindTeleport, temp, humidity, opts)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = dice.NewCryptoSource()
	}
	s.tele = &Teleport{owner: s, src: src}
	return s, nil
}

// Owner returns the teleport square.
func (t *Teleport) Owner() *Square {
	return t.owner
}

// AddDest registers sq as a destination.
//
// Precondition: the teleport square is attached to a dungeon.
// Postcondition: Returns an error unless sq is a non-solid square other than
// the teleport itself, in the same dungeon.
func (t *Teleport) AddDest(sq *Square) error {
	if sq == nil {
		return fmt.Errorf("add teleport destination: %w", ErrNilArgument)
	}
	if t.owner.dungeon == nil {
		return fmt.Errorf("add teleport destination: %w", ErrNotAttached)
	}
	if sq.dungeon != t.owner.dungeon {
		return fmt.Errorf("add teleport destination: %w", ErrDifferentDungeons)
	}
	if sq.IsSolid() {
		return fmt.Errorf("teleport into %s square: %w", sq.kind, ErrInvalidDestination)
	}
	if sq == t.owner {
		return fmt.Errorf("teleport into itself: %w", ErrInvalidDestination)
	}
	t.dest = append(t.dest, sq)
	return nil
}

// Dest returns a copy of the destinations in registration order.
func (t *Teleport) Dest() []*Square {
	res := make([]*Square, len(t.dest))
	copy(res, t.dest)
	return res
}

// Teleport picks a destination uniformly at random.
func (t *Teleport) Teleport() (*Square, bool) {
	i := dice.Pick(t.src, len(t.dest))
	if i < 0 {
		return nil, false
	}
	return t.dest[i], true
}
