package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

func newSquare(t *testing.T, temp int, humidity float64, opts ...world.SquareOption) *world.Square {
	t.Helper()
	sq, err := world.NewSquare(temp, humidity, opts...)
	require.NoError(t, err)
	return sq
}

func TestNewSquare_Defaults(t *testing.T) {
	sq := newSquare(t, 20, 40)
	assert.Equal(t, world.KindPlain, sq.Kind())
	assert.Equal(t, 20, sq.Temperature())
	assert.Equal(t, 40.0, sq.Humidity())
	assert.False(t, sq.IsSolid())
	assert.Nil(t, sq.Dungeon())
	for _, d := range world.AllDirections {
		side := sq.Border(d)
		require.NotNil(t, side, d)
		assert.Equal(t, world.KindNoBorder, side.Kind())
		assert.Same(t, sq, side.Square())
		assert.Nil(t, side.Adjacent())
	}
	_, ok := sq.Pos()
	assert.False(t, ok)
	_, ok = sq.AbsolutePos()
	assert.False(t, ok)
	assert.Nil(t, sq.Border(world.Direction("up")))
}

func TestNewSquare_RejectsOutOfDomain(t *testing.T) {
	_, err := world.NewSquare(-201, 40)
	assert.ErrorIs(t, err, world.ErrInvalidTemperature)
	_, err = world.NewSquare(20, 100.5)
	assert.ErrorIs(t, err, world.ErrInvalidHumidity)
}

func TestSquare_HumidityRounding(t *testing.T) {
	sq := newSquare(t, 20, 33.3333)
	assert.Equal(t, 33.33, sq.Humidity())
	require.NoError(t, sq.SetHumidity(12.345678))
	assert.InDelta(t, 12.35, sq.Humidity(), 1e-9)
}

func TestProperty_TemperatureDomain(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sq, err := world.NewSquare(20, 40)
		require.NoError(rt, err)
		temp := rapid.IntRange(-1000, 6000).Draw(rt, "temp")
		err = sq.SetTemperature(temp)
		if temp >= world.MinTemperature && temp <= world.MaxTemperature {
			require.NoError(rt, err)
			assert.Equal(rt, temp, sq.Temperature())
			return
		}
		assert.ErrorIs(rt, err, world.ErrInvalidTemperature)
		assert.Equal(rt, 20, sq.Temperature())
	})
}

func TestSquare_IsSlippery(t *testing.T) {
	cases := []struct {
		name     string
		temp     int
		humidity float64
		floor    bool
		want     bool
	}{
		{"dry and warm", 20, 40, false, false},
		{"slippery floor", 20, 40, true, true},
		{"standing water", 5, 100, false, true},
		{"saturated at freezing", 0, 100, false, true},
		{"ice", -3, 11, false, true},
		{"dry cold", -3, 10, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sq := newSquare(t, tc.temp, tc.humidity, world.WithSlipperyFloor(tc.floor))
			assert.Equal(t, tc.want, sq.IsSlippery())
		})
	}
}

func TestSquare_Damage(t *testing.T) {
	cases := []struct {
		temp             int
		cold, heat, rust int
	}{
		{temp: -4, cold: 0, heat: 0, rust: 0},
		{temp: -15, cold: 1},
		{temp: -25, cold: 2},
		{temp: 20},
		{temp: 36, heat: 0, rust: 0},
		{temp: 37, rust: 1},
		{temp: 50, heat: 1, rust: 2},
	}
	for _, tc := range cases {
		sq := newSquare(t, tc.temp, 50)
		assert.Equal(t, tc.cold, sq.ColdDamage(), "cold at %d", tc.temp)
		assert.Equal(t, tc.heat, sq.HeatDamage(), "heat at %d", tc.temp)
		assert.Equal(t, tc.rust, sq.RustDamage(), "rust at %d", tc.temp)
	}
}

func TestProperty_ColdDamage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		temp := rapid.IntRange(world.MinTemperature, world.MaxTemperature).Draw(rt, "temp")
		sq, err := world.NewSquare(temp, 50)
		require.NoError(rt, err)
		if temp > -5 {
			assert.Zero(rt, sq.ColdDamage())
			return
		}
		assert.Equal(rt, (-5-temp)/10, sq.ColdDamage())
	})
}

func TestSquare_Inhabitability(t *testing.T) {
	assert.Zero(t, newSquare(t, 20, 40).Inhabitability())
	assert.InDelta(t, -1.0, newSquare(t, -15, 40).Inhabitability(), 1e-9)
	// heat 1, humidity 100: -(1/1)
	assert.InDelta(t, -1.0, newSquare(t, 50, 100).Inhabitability(), 1e-9)
}

func TestSquare_SetBorder_CopiesValue(t *testing.T) {
	sq := newSquare(t, 20, 40)
	b := world.Door(false)
	require.NoError(t, sq.SetBorder(b, world.North))
	require.NoError(t, sq.Border(world.North).SetOpen(true))
	assert.False(t, b.IsOpen())
	assert.True(t, sq.Border(world.North).IsOpen())
}

func TestSquare_SetBorder_DoorNeverOnFloor(t *testing.T) {
	sq := newSquare(t, 20, 40)
	err := sq.SetBorder(world.Door(true), world.Floor)
	assert.ErrorIs(t, err, world.ErrIneligibleBorder)
	assert.Equal(t, world.KindNoBorder, sq.Border(world.Floor).Kind())
}

func TestSquare_SetBorder_AtMostThreeDoors(t *testing.T) {
	sq := newSquare(t, 20, 40)
	for _, d := range []world.Direction{world.North, world.East, world.South} {
		require.NoError(t, sq.SetBorder(world.Door(false), d))
	}
	assert.ErrorIs(t, sq.SetBorder(world.Door(false), world.West), world.ErrIneligibleBorder)
	assert.Equal(t, world.KindNoBorder, sq.Border(world.West).Kind())
	// replacing an existing door keeps the count
	require.NoError(t, sq.SetBorder(world.Door(true), world.North))
	assert.Equal(t, world.MaxDoors, sq.DoorCount())
}

func TestSquare_SetBorder_RejectsBadInput(t *testing.T) {
	sq := newSquare(t, 20, 40)
	assert.ErrorIs(t, sq.SetBorder(world.Border{}, world.North), world.ErrInvalidBorder)
	assert.ErrorIs(t, sq.SetBorder(world.Wall(false), world.Direction("up")), world.ErrInvalidDirection)
}

func TestNewSquareWithBorders(t *testing.T) {
	sq, err := world.NewSquareWithBorders(20, 40, world.AllDirections[:], dice.NewSeededSource(7))
	require.NoError(t, err)
	assert.LessOrEqual(t, sq.DoorCount(), world.MaxDoors)
	assert.Equal(t, world.KindWall, sq.Border(world.Floor).Kind())
	for _, d := range world.AllDirections {
		k := sq.Border(d).Kind()
		assert.Contains(t, []world.BorderKind{world.KindWall, world.KindDoor}, k)
		if k == world.KindDoor {
			assert.False(t, sq.Border(d).IsOpen())
		}
	}
}

func TestNewRock(t *testing.T) {
	rock, err := world.NewRock(300)
	require.NoError(t, err)
	assert.True(t, rock.IsSolid())
	assert.Equal(t, 300, rock.Temperature())
	assert.False(t, rock.CanChangeBorder())
	assert.False(t, rock.CanChangeTemperature())
	assert.ErrorIs(t, rock.SetTemperature(20), world.ErrLocked)
	assert.ErrorIs(t, rock.SetHumidity(20), world.ErrLocked)
	assert.ErrorIs(t, rock.SetBorder(world.NoBorder(), world.North), world.ErrBorderLocked)
	for _, d := range world.AllDirections {
		assert.Equal(t, world.KindWall, rock.Border(d).Kind())
		assert.False(t, rock.Border(d).IsSlippery())
	}
}

func TestNewTransparent(t *testing.T) {
	sq, err := world.NewTransparent(world.North, true)
	require.NoError(t, err)
	assert.Equal(t, world.KindTransparent, sq.Kind())
	assert.Zero(t, sq.Temperature())
	assert.Zero(t, sq.Humidity())
	assert.Equal(t, 2, sq.DoorCount())
	assert.Equal(t, world.KindDoor, sq.Border(world.South).Kind())
	assert.ErrorIs(t, sq.SetBorder(world.Wall(false), world.North), world.ErrBorderLocked)

	_, err = world.NewTransparent(world.Floor, false)
	assert.ErrorIs(t, err, world.ErrIneligibleBorder)
}

func TestSquare_MergeWith_Unlinked(t *testing.T) {
	a := newSquare(t, 20, 40)
	b := newSquare(t, 40, 60)
	require.NoError(t, a.SetBorder(world.Wall(false), world.East))
	require.NoError(t, b.SetBorder(world.Wall(false), world.West))

	require.NoError(t, a.MergeWith(b, world.East))
	assert.Equal(t, 50.0, a.Humidity())
	assert.Equal(t, a.Humidity(), b.Humidity())
	assert.Equal(t, 32, a.Temperature())
	assert.Equal(t, 32, b.Temperature())
	assert.Equal(t, world.KindNoBorder, a.Border(world.East).Kind())
	assert.Equal(t, world.KindNoBorder, b.Border(world.West).Kind())
}

func TestSquare_MergeWith_Rejects(t *testing.T) {
	a := newSquare(t, 20, 40)
	rock, err := world.NewRock(20)
	require.NoError(t, err)

	assert.ErrorIs(t, a.MergeWith(nil, world.East), world.ErrNilArgument)
	assert.ErrorIs(t, a.MergeWith(a, world.East), world.ErrSelfMerge)
	assert.ErrorIs(t, a.MergeWith(newSquare(t, 0, 0), world.Direction("")), world.ErrInvalidDirection)
	assert.ErrorIs(t, a.MergeWith(rock, world.East), world.ErrLocked)
	assert.Equal(t, 20, a.Temperature())
	assert.Equal(t, 40.0, a.Humidity())
}

func TestProperty_MergeWith(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a, err := world.NewSquare(
			rapid.IntRange(world.MinTemperature, world.MaxTemperature).Draw(rt, "ta"),
			rapid.Float64Range(world.MinHumidity, world.MaxHumidity).Draw(rt, "ha"))
		require.NoError(rt, err)
		b, err := world.NewSquare(
			rapid.IntRange(world.MinTemperature, world.MaxTemperature).Draw(rt, "tb"),
			rapid.Float64Range(world.MinHumidity, world.MaxHumidity).Draw(rt, "hb"))
		require.NoError(rt, err)
		d := rapid.SampledFrom(world.AllDirections[:]).Draw(rt, "dir")

		require.NoError(rt, a.MergeWith(b, d))
		assert.Equal(rt, a.Humidity(), b.Humidity())
		assert.Equal(rt, a.Temperature(), b.Temperature())
		assert.True(rt, world.IsValidTemperature(a.Temperature()))
		assert.True(rt, world.IsValidHumidity(a.Humidity()))
		assert.Equal(rt, world.KindNoBorder, a.Border(d).Kind())
		assert.Equal(rt, world.KindNoBorder, b.Border(d.Opposite()).Kind())
	})
}

func TestFilterKind(t *testing.T) {
	rock, err := world.NewRock(20)
	require.NoError(t, err)
	plain := newSquare(t, 20, 40)
	got := world.FilterKind([]*world.Square{plain, rock, nil, plain}, world.KindPlain)
	assert.Equal(t, []*world.Square{plain, plain}, got)
}
