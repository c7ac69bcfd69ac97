package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// levelWithExtent returns a level whose dimensions are (x+1, y+1, 1).
func levelWithExtent(t *testing.T, x, y int) *world.Dungeon {
	t.Helper()
	l := world.NewLevel()
	addSquare(t, l, world.Pt(x, y, 0), newSquare(t, 20, 40))
	return l
}

func TestComposite_AddDungeon(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := world.NewComposite(world.WithLogger(zap.New(core)))
	l := levelWithExtent(t, 2, 2)

	require.NoError(t, c.AddDungeon(world.Pt(0, 0, 0), l))
	assert.Same(t, c, l.Parent())
	pos, ok := l.Pos()
	require.True(t, ok)
	assert.Equal(t, world.Pt(0, 0, 0), pos)
	assert.Equal(t, []*world.Dungeon{l}, c.Children())
	assert.Equal(t, world.KindComposite, c.Kind())
	assert.Equal(t, 1, logs.FilterMessage("child dungeon attached").Len())
}

func TestComposite_RejectsCoveredOrigin(t *testing.T) {
	c := world.NewComposite()
	first := levelWithExtent(t, 2, 2)
	require.NoError(t, c.AddDungeon(world.Pt(0, 0, 0), first))

	second := levelWithExtent(t, 1, 0)
	assert.ErrorIs(t, c.AddDungeon(world.Pt(1, 1, 0), second), world.ErrDungeonOverlap)
	assert.Nil(t, second.Parent())

	got, ok := c.DungeonAt(world.Pt(1, 1, 0))
	require.True(t, ok)
	assert.Same(t, first, got)

	require.NoError(t, c.AddDungeon(world.Pt(3, 0, 0), second))
	got, ok = c.DungeonAt(world.Pt(4, 0, 0))
	require.True(t, ok)
	assert.Same(t, second, got)
	_, ok = c.DungeonAt(world.Pt(4, 1, 0))
	assert.False(t, ok)
}

func TestComposite_EmptyChildOnTakenKey(t *testing.T) {
	c := world.NewComposite()
	require.NoError(t, c.AddDungeon(world.Pt(5, 5, 5), world.NewDungeon()))
	assert.ErrorIs(t, c.AddDungeon(world.Pt(5, 5, 5), world.NewDungeon()), world.ErrDungeonOverlap)
}

func TestComposite_AddDungeonRejects(t *testing.T) {
	c := world.NewComposite()
	assert.ErrorIs(t, c.AddDungeon(world.Pt(0, 0, 0), nil), world.ErrNilArgument)
	assert.ErrorIs(t, c.AddDungeon(world.Pt(0, 0, 0), (*world.Composite)(nil)), world.ErrNilArgument)
	assert.ErrorIs(t, c.AddDungeon(world.Pt(-1, 0, 0), world.NewLevel()), world.ErrInvalidPosition)
	assert.ErrorIs(t, c.AddDungeon(world.Pt(0, 0, 0), c), world.ErrCycle)

	l := world.NewLevel()
	require.NoError(t, c.AddDungeon(world.Pt(0, 0, 0), l))
	other := world.NewComposite()
	assert.ErrorIs(t, other.AddDungeon(world.Pt(0, 0, 0), l), world.ErrAlreadyAttached)

	inner := world.NewComposite()
	require.NoError(t, c.AddDungeon(world.Pt(10, 0, 0), inner))
	assert.ErrorIs(t, inner.AddDungeon(world.Pt(0, 0, 0), c), world.ErrCycle)
}

func nestedTree(t *testing.T) (root, mid *world.Composite, lvl *world.Dungeon, sq *world.Square) {
	t.Helper()
	root = world.NewComposite()
	mid = world.NewComposite()
	lvl = world.NewLevel()
	sq = addSquare(t, lvl, world.Pt(1, 2, 0), newSquare(t, 20, 40))
	require.NoError(t, mid.AddDungeon(world.Pt(0, 5, 0), lvl))
	require.NoError(t, root.AddDungeon(world.Pt(10, 0, 0), mid))
	return root, mid, lvl, sq
}

func TestComposite_AbsolutePos(t *testing.T) {
	root, mid, lvl, sq := nestedTree(t)

	_, ok := root.AbsolutePos()
	assert.False(t, ok)
	p, ok := mid.AbsolutePos()
	require.True(t, ok)
	assert.Equal(t, world.Pt(10, 0, 0), p)
	p, ok = lvl.AbsolutePos()
	require.True(t, ok)
	assert.Equal(t, world.Pt(10, 5, 0), p)
	p, ok = sq.AbsolutePos()
	require.True(t, ok)
	assert.Equal(t, world.Pt(11, 7, 0), p)

	_, ok = world.NewLevel().AbsolutePos()
	assert.False(t, ok)
}

func TestComposite_DungeonAtNested(t *testing.T) {
	root, _, lvl, _ := nestedTree(t)
	got, ok := root.DungeonAt(world.Pt(11, 7, 0))
	require.True(t, ok)
	assert.Same(t, lvl, got)

	assert.ErrorIs(t, root.AddDungeon(world.Pt(11, 7, 0), world.NewLevel()), world.ErrDungeonOverlap)
	_, ok = root.DungeonAt(world.Pt(9, 7, 0))
	assert.False(t, ok)
}

func TestComposite_Aggregates(t *testing.T) {
	root, mid, lvl, _ := nestedTree(t)
	shaft := world.NewShaft()
	require.NoError(t, root.AddDungeon(world.Pt(0, 20, 0), shaft))
	plain := world.NewDungeon()
	require.NoError(t, root.AddDungeon(world.Pt(0, 30, 0), plain))

	tele, err := world.NewTeleport(20, 40, nil)
	require.NoError(t, err)
	addSquare(t, lvl, world.Pt(3, 0, 0), tele)
	rock, err := world.NewRock(250)
	require.NoError(t, err)
	addSquare(t, plain, world.Pt(1, 0, 0), rock)
	own, err := world.NewRock(400)
	require.NoError(t, err)
	addSquare(t, mid.Base(), world.Pt(1, 0, 0), own)

	assert.Equal(t, []*world.Dungeon{lvl, shaft}, root.LevelsAndShafts())
	require.Len(t, root.Teleports(), 1)
	assert.Same(t, tele, root.Teleports()[0].Owner())
	assert.ElementsMatch(t, []*world.Square{rock, own}, root.HotRockSquares())

	asComposite, ok := mid.Base().AsComposite()
	require.True(t, ok)
	assert.Same(t, mid, asComposite)
	_, ok = lvl.AsComposite()
	assert.False(t, ok)
}

func TestProperty_AbsolutePosSums(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		coord := func(label string) world.Point {
			return world.Pt(
				rapid.IntRange(0, 50).Draw(rt, label+"x"),
				rapid.IntRange(0, 50).Draw(rt, label+"y"),
				rapid.IntRange(0, 50).Draw(rt, label+"z"))
		}
		outer, inner, local := coord("outer"), coord("inner"), coord("local")
		if !local.IsValid() {
			local = world.Pt(local.X+1, local.Y, local.Z)
		}

		root := world.NewComposite()
		mid := world.NewComposite()
		d := world.NewDungeon()
		sq, err := world.NewSquare(20, 40)
		require.NoError(rt, err)
		require.NoError(rt, d.AddSquare(sq, local))
		require.NoError(rt, mid.AddDungeon(inner, d))
		require.NoError(rt, root.AddDungeon(outer, mid))

		got, ok := sq.AbsolutePos()
		require.True(rt, ok)
		assert.Equal(rt, outer.Add(inner).Add(local), got)
	})
}
