// Package world provides the dungeon model: squares joined by typed, mirrored
// borders, held in bounded 3D dungeons that nest inside composite dungeons.
package world

import (
	"fmt"
	"iter"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DungeonKind identifies the shape constraint of a Dungeon.
type DungeonKind string

// Dungeon kinds.
const (
	KindDungeon   DungeonKind = "dungeon"
	KindLevel     DungeonKind = "level"
	KindShaft     DungeonKind = "shaft"
	KindPlateau   DungeonKind = "plateau"
	KindComposite DungeonKind = "composite"
)

// Unbounded is the default dimension ceiling.
const Unbounded = math.MaxInt

// Dungeon is a sparse 3D container of squares.
//
// Invariant: for every axis, dim <= maxDim; dim only grows.
// Invariant: every stored square reports this dungeon and its storage key.
type Dungeon struct {
	id     uuid.UUID
	kind   DungeonKind
	rules  Rules
	logger *zap.Logger

	maxDim [3]int
	dim    [3]int

	squares map[Point]*Square

	parent *Composite
	pos    Point

	// composite is set when this Dungeon is the embedded base of a Composite.
	composite *Composite
}

// DungeonOption customises a dungeon at construction.
type DungeonOption func(*Dungeon)

// WithRules sets the rules governing insertion quotas and hot rock queries.
func WithRules(r Rules) DungeonOption {
	return func(d *Dungeon) { d.rules = r }
}

// WithLogger sets the logger receiving mutation events.
func WithLogger(logger *zap.Logger) DungeonOption {
	return func(d *Dungeon) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMaxDimensions sets the dimension ceiling of each axis. Shape kinds
// clamp their constrained axes afterwards.
func WithMaxDimensions(x, y, z int) DungeonOption {
	return func(d *Dungeon) { d.maxDim = [3]int{x, y, z} }
}

func (d *Dungeon) init(kind DungeonKind, opts []DungeonOption) {
	d.id = uuid.New()
	d.kind = kind
	d.rules = DefaultRules()
	d.logger = zap.NewNop()
	d.maxDim = [3]int{Unbounded, Unbounded, Unbounded}
	d.squares = make(map[Point]*Square)
	for _, opt := range opts {
		opt(d)
	}
	switch kind {
	case KindLevel, KindPlateau:
		d.maxDim[2] = min(d.maxDim[2], 1)
	case KindShaft:
		d.maxDim[0] = min(d.maxDim[0], 1)
		d.maxDim[1] = min(d.maxDim[1], 1)
	}
}

func newDungeon(kind DungeonKind, opts []DungeonOption) *Dungeon {
	d := &Dungeon{}
	d.init(kind, opts)
	return d
}

// NewDungeon creates an unconstrained dungeon.
func NewDungeon(opts ...DungeonOption) *Dungeon {
	return newDungeon(KindDungeon, opts)
}

// NewLevel creates a dungeon one square tall.
func NewLevel(opts ...DungeonOption) *Dungeon {
	return newDungeon(KindLevel, opts)
}

// NewPlateau creates a dungeon one square tall.
func NewPlateau(opts ...DungeonOption) *Dungeon {
	return newDungeon(KindPlateau, opts)
}

// NewShaft creates a vertical dungeon one square wide and deep.
func NewShaft(opts ...DungeonOption) *Dungeon {
	return newDungeon(KindShaft, opts)
}

// ID returns the stable identity of the dungeon.
func (d *Dungeon) ID() uuid.UUID {
	return d.id
}

// Kind returns the shape kind.
func (d *Dungeon) Kind() DungeonKind {
	return d.kind
}

// Base returns d itself; it lets a *Dungeon stand wherever a Node is expected.
func (d *Dungeon) Base() *Dungeon {
	return d
}

// AsComposite returns the Composite d is the base of, if any.
func (d *Dungeon) AsComposite() (*Composite, bool) {
	return d.composite, d.composite != nil
}

// Dimensions returns the current extent of each axis: one past the largest
// coordinate ever stored.
func (d *Dungeon) Dimensions() (x, y, z int) {
	return d.dim[0], d.dim[1], d.dim[2]
}

// MaxDimensions returns the ceiling of each axis.
func (d *Dungeon) MaxDimensions() (x, y, z int) {
	return d.maxDim[0], d.maxDim[1], d.maxDim[2]
}

// Len returns the number of squares held.
func (d *Dungeon) Len() int {
	return len(d.squares)
}

// HasSquare reports whether a square is stored at pos.
func (d *Dungeon) HasSquare(pos Point) bool {
	_, ok := d.squares[pos]
	return ok
}

// Square returns the square at pos.
//
// Postcondition: Returns (square, true) if found, or (nil, false) otherwise.
func (d *Dungeon) Square(pos Point) (*Square, bool) {
	sq, ok := d.squares[pos]
	return sq, ok
}

// InsideDimensions reports whether pos is valid and within the current extent.
func (d *Dungeon) InsideDimensions(pos Point) bool {
	return pos.IsValid() && pos.X < d.dim[0] && pos.Y < d.dim[1] && pos.Z < d.dim[2]
}

// All iterates over every stored square. Iteration order is unspecified.
func (d *Dungeon) All() iter.Seq2[Point, *Square] {
	return func(yield func(Point, *Square) bool) {
		for p, sq := range d.squares {
			if !yield(p, sq) {
				return
			}
		}
	}
}

// Squares returns every stored square in unspecified order.
func (d *Dungeon) Squares() []*Square {
	res := make([]*Square, 0, len(d.squares))
	for _, sq := range d.squares {
		res = append(res, sq)
	}
	return res
}

// AddSquare stores sq at pos and links it to each of its existing neighbours.
//
// Precondition: sq is unattached and pos is a free, valid position.
// Postcondition: On success d.Square(pos) == sq, sq.Dungeon() == d and
// sq.Pos() == pos. On error nothing is modified.
func (d *Dungeon) AddSquare(sq *Square, pos Point) error {
	if sq == nil {
		return fmt.Errorf("add square: %w", ErrNilArgument)
	}
	if sq.dungeon != nil {
		return fmt.Errorf("add square %s: %w", sq.id, ErrAlreadyAttached)
	}
	if !pos.IsValid() {
		return fmt.Errorf("add square at %s: %w", pos, ErrInvalidPosition)
	}
	if d.HasSquare(pos) {
		return fmt.Errorf("add square at %s: %w", pos, ErrOccupied)
	}
	if sq.slipperyFloor && !d.admitsSlippery() {
		d.logger.Warn("slippery floor quota reached",
			zap.Stringer("dungeon", d.id),
			zap.Stringer("pos", pos),
			zap.Float64("max_fraction", d.rules.MaxSlipperyFraction),
		)
		return fmt.Errorf("add square at %s: %w", pos, ErrSlipperyQuota)
	}
	dim, err := d.grownDimensions(pos)
	if err != nil {
		d.logger.Warn("dimension ceiling reached",
			zap.Stringer("dungeon", d.id),
			zap.Stringer("pos", pos),
		)
		return err
	}

	d.squares[pos] = sq
	sq.dungeon = d
	sq.pos = pos
	plans, err := d.planLinks(sq)
	if err != nil {
		delete(d.squares, pos)
		sq.dungeon = nil
		sq.pos = Point{}
		return fmt.Errorf("add square at %s: %w", pos, err)
	}

	d.dim = dim
	for _, p := range plans {
		sq.link(p.neighbour, p.dir, p.border)
		d.logger.Debug("squares linked",
			zap.Stringer("dungeon", d.id),
			zap.Stringer("square", sq.id),
			zap.Stringer("neighbour", p.neighbour.id),
			zap.String("direction", string(p.dir)),
			zap.String("border", p.border.String()),
		)
	}
	d.logger.Debug("square added",
		zap.Stringer("dungeon", d.id),
		zap.Stringer("square", sq.id),
		zap.String("kind", string(sq.kind)),
		zap.Stringer("pos", pos),
	)
	return nil
}

// admitsSlippery applies the slippery floor quota to one more slippery square.
// The ratio is taken over integer counts, so it only exceeds a fractional
// ceiling once every square would be slippery.
func (d *Dungeon) admitsSlippery() bool {
	slippery := 1
	for _, sq := range d.squares {
		if sq.slipperyFloor {
			slippery++
		}
	}
	total := len(d.squares) + 1
	return float64(slippery/total) <= d.rules.MaxSlipperyFraction
}

// grownDimensions returns the extent after storing a square at pos.
func (d *Dungeon) grownDimensions(pos Point) ([3]int, error) {
	dim := d.dim
	for i := range dim {
		c := pos.axis(i)
		if c < dim[i] {
			continue
		}
		if c >= d.maxDim[i] {
			return dim, fmt.Errorf("add square at %s: axis %d needs %d, ceiling %d: %w",
				pos, i, c+1, d.maxDim[i], ErrDimensionExceeded)
		}
		dim[i] = c + 1
	}
	return dim, nil
}

type linkPlan struct {
	dir       Direction
	neighbour *Square
	border    Border
}

// planLinks resolves the border sq will share with each neighbour and checks
// that the resulting door layout is legal on every square involved.
//
// Precondition: sq is already stored at its position.
func (d *Dungeon) planLinks(sq *Square) ([]linkPlan, error) {
	var plans []linkPlan
	final := sq.slots
	for _, dir := range AllDirections {
		n, ok := d.squares[dir.Move(sq.pos)]
		if !ok {
			continue
		}
		b, err := sq.resolveLink(n, dir)
		if err != nil {
			return nil, err
		}
		plans = append(plans, linkPlan{dir: dir, neighbour: n, border: b})
		final[dir.index()] = &Side{edge: &edge{border: b}}
	}

	doors := 0
	for i, side := range final {
		if side.Kind() != KindDoor {
			continue
		}
		if AllDirections[i] == Floor {
			return nil, fmt.Errorf("door on floor: %w", ErrIneligibleBorder)
		}
		doors++
	}
	if doors > MaxDoors {
		return nil, fmt.Errorf("%d doors: %w", doors, ErrIneligibleBorder)
	}
	for _, p := range plans {
		opp := p.dir.Opposite()
		if !p.border.allowedWith(opp, p.neighbour.doorCountExcept(opp)) {
			return nil, fmt.Errorf("%s on neighbour's %s: %w", p.border, opp, ErrIneligibleBorder)
		}
	}
	return plans, nil
}

// RemoveSquare unlinks and removes the square at pos. Dimensions are kept.
//
// Postcondition: Returns the removed square, or an error wrapping ErrNoSquare
// if pos is empty.
func (d *Dungeon) RemoveSquare(pos Point) (*Square, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("remove square at %s: %w", pos, ErrInvalidPosition)
	}
	sq, ok := d.squares[pos]
	if !ok {
		return nil, fmt.Errorf("remove square at %s: %w", pos, ErrNoSquare)
	}
	sq.unlink()
	delete(d.squares, pos)
	d.logger.Debug("square removed",
		zap.Stringer("dungeon", d.id),
		zap.Stringer("square", sq.id),
		zap.Stringer("pos", pos),
	)
	return sq, nil
}

// Teleports returns every teleport-capable square held by d.
func (d *Dungeon) Teleports() []*Teleport {
	var res []*Teleport
	for _, sq := range d.squares {
		if t, ok := sq.Teleporter(); ok {
			res = append(res, t)
		}
	}
	return res
}

// HotRockSquares returns the solid squares at or above the HotRockThreshold rule.
func (d *Dungeon) HotRockSquares() []*Square {
	var res []*Square
	for _, sq := range d.squares {
		if sq.IsSolid() && sq.temp >= d.rules.HotRockThreshold {
			res = append(res, sq)
		}
	}
	return res
}

// Parent returns the composite holding d, or nil when d is a root.
func (d *Dungeon) Parent() *Composite {
	return d.parent
}

// Pos returns d's position inside its parent.
//
// Postcondition: Returns (pos, true) if attached, or (Point{}, false) otherwise.
func (d *Dungeon) Pos() (Point, bool) {
	if d.parent == nil {
		return Point{}, false
	}
	return d.pos, true
}

// AbsolutePos returns d's position in the root composite's frame.
//
// Postcondition: Returns false if d is not attached to a parent.
func (d *Dungeon) AbsolutePos() (Point, bool) {
	if d.parent == nil {
		return Point{}, false
	}
	if d.parent.parent == nil {
		return d.pos, true
	}
	base, ok := d.parent.AbsolutePos()
	if !ok {
		return Point{}, false
	}
	return base.Add(d.pos), true
}

// String returns a short description of the dungeon.
func (d *Dungeon) String() string {
	return fmt.Sprintf("%s %s(%d squares, dim %dx%dx%d)",
		d.kind, d.id, len(d.squares), d.dim[0], d.dim[1], d.dim[2])
}
