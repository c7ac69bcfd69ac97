package world

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Temperature domain in degrees Celsius.
const (
	MinTemperature = -200
	MaxTemperature = 5000
)

// Humidity domain in percent.
const (
	MinHumidity = 0.0
	MaxHumidity = 100.0
)

// SquareKind identifies the variant of a Square.
type SquareKind string

// Square kinds.
const (
	KindPlain       SquareKind = "plain"
	KindRock        SquareKind = "rock"
	KindTransparent SquareKind = "transparent"
	KindTeleport    SquareKind = "teleport"
)

// Square is a single cell of a dungeon. It owns six border slots, one per
// Direction, which are always populated.
//
// Invariant: MinTemperature <= Temperature() <= MaxTemperature.
// Invariant: MinHumidity <= Humidity() <= MaxHumidity.
// Invariant: DoorCount() <= MaxDoors and Border(Floor) is never a door.
// Invariant: Dungeon() == nil iff Pos() reports false.
type Square struct {
	id            uuid.UUID
	kind          SquareKind
	rules         Rules
	temp          int
	humidity      float64
	slipperyFloor bool
	// restricted freezes the attributes a kind protects (see CanChange*).
	restricted bool
	slots      [len(AllDirections)]*Side

	dungeon *Dungeon
	pos     Point

	tele *Teleport
}

// SquareOption customises a square at construction.
type SquareOption func(*Square)

// WithSquareRules sets the rules governing damage and merging for the square.
func WithSquareRules(r Rules) SquareOption {
	return func(s *Square) { s.rules = r }
}

// WithSlipperyFloor sets the slippery floor flag.
func WithSlipperyFloor(slippery bool) SquareOption {
	return func(s *Square) { s.slipperyFloor = slippery }
}

func newSquare(kind SquareKind, temp int, humidity float64, opts []SquareOption) (*Square, error) {
	s := &Square{
		id:    uuid.New(),
		kind:  kind,
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.SetTemperature(temp); err != nil {
		return nil, err
	}
	if err := s.SetHumidity(humidity); err != nil {
		return nil, err
	}
	for _, dir := range AllDirections {
		s.slots[dir.index()] = newLoneSide(NoBorder(), s, dir)
	}
	return s, nil
}

// NewSquare creates a plain square with NoBorder on every face.
//
// Postcondition: Returns an unattached square, or an error if temp or humidity
// is outside its domain.
func NewSquare(temp int, humidity float64, opts ...SquareOption) (*Square, error) {
	return newSquare(KindPlain, temp, humidity, opts)
}

// NewSquareWithBorders creates a plain square with a closed door or a wall,
// chosen by src, on each face in dirs. A wall is used wherever a door is not
// allowed.
//
// Precondition: src must be non-nil.
func NewSquareWithBorders(temp int, humidity float64, dirs []Direction, src dice.Source, opts ...SquareOption) (*Square, error) {
	s, err := newSquare(KindPlain, temp, humidity, opts)
	if err != nil {
		return nil, err
	}
	door := Door(false)
	for _, dir := range dirs {
		if !dir.Valid() {
			return nil, fmt.Errorf("border on %q: %w", dir, ErrInvalidDirection)
		}
		b := Wall(false)
		if door.canLink(s, dir) && !dice.Bool(src) {
			b = door
		}
		s.slots[dir.index()] = newLoneSide(b, s, dir)
	}
	return s, nil
}

// NewRock creates a solid rock square walled on every face. Its temperature,
// humidity and borders are fixed; humidity follows its linked neighbours.
func NewRock(temp int, opts ...SquareOption) (*Square, error) {
	s, err := newSquare(KindRock, temp, 0, opts)
	if err != nil {
		return nil, err
	}
	s.slipperyFloor = false
	for _, dir := range AllDirections {
		s.slots[dir.index()] = newLoneSide(Wall(false), s, dir)
	}
	s.restricted = true
	return s, nil
}

// NewTransparent creates a square at 0°C and 0% humidity with a closed door
// facing doorDir and, if twoDoors, another on the opposite face. Its borders
// are fixed.
func NewTransparent(doorDir Direction, twoDoors bool, opts ...SquareOption) (*Square, error) {
	if !doorDir.Valid() {
		return nil, fmt.Errorf("transparent door on %q: %w", doorDir, ErrInvalidDirection)
	}
	s, err := newSquare(KindTransparent, 0, 0, opts)
	if err != nil {
		return nil, err
	}
	s.slipperyFloor = false
	dirs := []Direction{doorDir}
	if twoDoors {
		dirs = append(dirs, doorDir.Opposite())
	}
	for _, dir := range dirs {
		if err := s.SetBorder(Door(false), dir); err != nil {
			return nil, fmt.Errorf("transparent door on %s: %w", dir, err)
		}
	}
	s.restricted = true
	return s, nil
}

// ID returns the stable identity of the square.
func (s *Square) ID() uuid.UUID {
	return s.id
}

// Kind returns the square variant.
func (s *Square) Kind() SquareKind {
	return s.kind
}

// IsSolid reports whether the square cannot be occupied.
func (s *Square) IsSolid() bool {
	return s.kind == KindRock
}

// Dungeon returns the dungeon holding the square, or nil when unattached.
func (s *Square) Dungeon() *Dungeon {
	return s.dungeon
}

// Pos returns the square's coordinate within its dungeon.
//
// Postcondition: Returns (pos, true) if attached, or (Point{}, false) otherwise.
func (s *Square) Pos() (Point, bool) {
	if s.dungeon == nil {
		return Point{}, false
	}
	return s.pos, true
}

// AbsolutePos returns the square's coordinate in the root dungeon's frame.
//
// Postcondition: Returns false if the square is unattached or any dungeon in
// the ancestor chain lacks a position.
func (s *Square) AbsolutePos() (Point, bool) {
	if s.dungeon == nil {
		return Point{}, false
	}
	if s.dungeon.parent == nil {
		return s.pos, true
	}
	base, ok := s.dungeon.AbsolutePos()
	if !ok {
		return Point{}, false
	}
	return base.Add(s.pos), true
}

// Temperature returns the temperature in degrees Celsius.
func (s *Square) Temperature() int {
	return s.temp
}

// CanChangeTemperature reports whether SetTemperature may succeed.
func (s *Square) CanChangeTemperature() bool {
	return !(s.restricted && s.kind == KindRock)
}

// IsValidTemperature reports whether t lies in the temperature domain.
func IsValidTemperature(t int) bool {
	return t >= MinTemperature && t <= MaxTemperature
}

// SetTemperature sets the temperature.
//
// Postcondition: On error the stored temperature is unchanged.
func (s *Square) SetTemperature(t int) error {
	if !s.CanChangeTemperature() {
		return fmt.Errorf("set temperature of %s square: %w", s.kind, ErrLocked)
	}
	if !IsValidTemperature(t) {
		return fmt.Errorf("temperature %d: %w", t, ErrInvalidTemperature)
	}
	s.temp = t
	return nil
}

// Humidity returns the humidity percentage, rounded to two decimals.
func (s *Square) Humidity() float64 {
	return s.humidity
}

// CanChangeHumidity reports whether SetHumidity may succeed.
func (s *Square) CanChangeHumidity() bool {
	return !(s.restricted && s.kind == KindRock)
}

// IsValidHumidity reports whether h lies in the humidity domain.
func IsValidHumidity(h float64) bool {
	return h >= MinHumidity && h <= MaxHumidity
}

// SetHumidity sets the humidity, rounding it to two decimals.
//
// Postcondition: On error the stored humidity is unchanged.
func (s *Square) SetHumidity(h float64) error {
	if !s.CanChangeHumidity() {
		return fmt.Errorf("set humidity of %s square: %w", s.kind, ErrLocked)
	}
	if !IsValidHumidity(h) {
		return fmt.Errorf("humidity %g: %w", h, ErrInvalidHumidity)
	}
	s.humidity = roundHumidity(h)
	return nil
}

func roundHumidity(h float64) float64 {
	return math.Round(h*100) / 100
}

// SlipperyFloor reports the slippery floor flag.
func (s *Square) SlipperyFloor() bool {
	return s.slipperyFloor
}

// SetSlipperyFloor sets the slippery floor flag. The dungeon quota is only
// enforced when a square is added.
func (s *Square) SetSlipperyFloor(slippery bool) {
	s.slipperyFloor = slippery
}

// IsSlippery reports whether the square is slippery: a slippery floor, water
// at 100% humidity above freezing, or ice above 10% humidity at or below it.
func (s *Square) IsSlippery() bool {
	return s.slipperyFloor ||
		(s.humidity == MaxHumidity && s.temp > 0) ||
		(s.humidity > 10 && s.temp <= 0)
}

// ColdDamage returns one point per ColdDamageInterval degrees at or below ColdDamageMax.
func (s *Square) ColdDamage() int {
	if s.temp > s.rules.ColdDamageMax {
		return 0
	}
	return (s.rules.ColdDamageMax - s.temp) / s.rules.ColdDamageInterval
}

// HeatDamage returns one point per HeatDamageInterval degrees at or above HeatDamageMin.
func (s *Square) HeatDamage() int {
	if s.temp < s.rules.HeatDamageMin {
		return 0
	}
	return (s.temp - s.rules.HeatDamageMin) / s.rules.HeatDamageInterval
}

// RustDamage returns one point per RustDamageInterval degrees at or above RustDamageMin.
func (s *Square) RustDamage() int {
	if s.temp < s.rules.RustDamageMin {
		return 0
	}
	return (s.temp - s.rules.RustDamageMin) / s.rules.RustDamageInterval
}

// Inhabitability scores how hospitable the square is; 0 is best, lower is worse.
func (s *Square) Inhabitability() float64 {
	heat := float64(s.HeatDamage())
	cold := float64(s.ColdDamage())
	return -(math.Sqrt(heat*heat*heat)/math.Sqrt(101-s.humidity) + math.Sqrt(cold))
}

// Teleporter returns the square's teleport capability, if it has one.
func (s *Square) Teleporter() (*Teleport, bool) {
	return s.tele, s.tele != nil
}

// CanReachDirect reports whether other is reachable from s through open borders.
//
// Postcondition: false if s is unattached, or other is nil or solid.
func (s *Square) CanReachDirect(other *Square) bool {
	return s.canReach(other, false)
}

// CanReach reports whether other is reachable from s through open borders and
// teleports.
//
// Postcondition: false if s is unattached, or other is nil or solid.
func (s *Square) CanReach(other *Square) bool {
	return s.canReach(other, true)
}

func (s *Square) canReach(other *Square, teleports bool) bool {
	if s.dungeon == nil || other == nil || other.IsSolid() {
		return false
	}
	space, err := s.dungeon.space(s.pos, teleports)
	if err != nil {
		return false
	}
	return space.Contains(other)
}

// FilterKind returns the squares of the given kind, preserving order.
func FilterKind(squares []*Square, kind SquareKind) []*Square {
	var res []*Square
	for _, sq := range squares {
		if sq != nil && sq.kind == kind {
			res = append(res, sq)
		}
	}
	return res
}

// String returns a short description of the square.
func (s *Square) String() string {
	pos := "unattached"
	if p, ok := s.Pos(); ok {
		pos = p.String()
	}
	return fmt.Sprintf("%s square(temp:%d humidity:%.2f slippery:%t pos:%s)",
		s.kind, s.temp, s.humidity, s.slipperyFloor, pos)
}
