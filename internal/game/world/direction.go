package world

// Direction names one of the six faces of a square.
type Direction string

// The six axis-aligned directions. North/South move along Y, East/West along X,
// Ceiling/Floor along Z.
const (
	North   Direction = "north"
	East    Direction = "east"
	South   Direction = "south"
	West    Direction = "west"
	Ceiling Direction = "ceiling"
	Floor   Direction = "floor"
)

// AllDirections lists every direction in slot order.
var AllDirections = [...]Direction{North, East, South, West, Ceiling, Floor}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d.index() >= 0
}

// index returns the border slot of d, or -1 for an unknown direction.
func (d Direction) index() int {
	switch d {
	case North:
		return 0
	case East:
		return 1
	case South:
		return 2
	case West:
		return 3
	case Ceiling:
		return 4
	case Floor:
		return 5
	default:
		return -1
	}
}

// Opposite returns the direction facing d.
// For unknown directions, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Ceiling:
		return Floor
	case Floor:
		return Ceiling
	default:
		return ""
	}
}

// Move returns p offset by one step in direction d.
// For unknown directions, p is returned unchanged.
func (d Direction) Move(p Point) Point {
	switch d {
	case North:
		p.Y++
	case South:
		p.Y--
	case East:
		p.X++
	case West:
		p.X--
	case Ceiling:
		p.Z++
	case Floor:
		p.Z--
	}
	return p
}
