package world

import "errors"

// Sentinel errors returned (wrapped) by world operations. Match with errors.Is.
var (
	ErrNilArgument         = errors.New("nil argument")
	ErrInvalidDirection    = errors.New("invalid direction")
	ErrInvalidBorder       = errors.New("invalid border")
	ErrInvalidPosition     = errors.New("invalid position")
	ErrInvalidTemperature  = errors.New("temperature out of range")
	ErrInvalidHumidity     = errors.New("humidity out of range")
	ErrInvalidDestination  = errors.New("invalid teleport destination")
	ErrOccupied            = errors.New("position already occupied")
	ErrNoSquare            = errors.New("no square at position")
	ErrAlreadyAttached     = errors.New("already attached")
	ErrNotAttached         = errors.New("not attached to a dungeon")
	ErrDifferentDungeons   = errors.New("squares are in different dungeons")
	ErrNotAdjacent         = errors.New("squares are not adjacent in the given direction")
	ErrDimensionExceeded   = errors.New("dimension ceiling exceeded")
	ErrSlipperyQuota       = errors.New("slippery floor quota exceeded")
	ErrIneligibleBorder    = errors.New("border type not allowed in this slot")
	ErrIncompatibleBorders = errors.New("neighbouring borders cannot be reconciled")
	ErrBorderLocked        = errors.New("border cannot be changed")
	ErrWrongBorderKind     = errors.New("operation not supported by this border kind")
	ErrLocked              = errors.New("square attribute cannot be changed")
	ErrSelfMerge           = errors.New("a square cannot be merged with itself")
	ErrDungeonOverlap      = errors.New("position already covered by a child dungeon")
	ErrCycle               = errors.New("dungeon cannot contain itself")
)
