package geom

import (
	"math"
	"testing"

	"github.com/PhoenixofForce/SplineCoaster/math/mat"
	"github.com/PhoenixofForce/SplineCoaster/math/spline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

const testEps = 1e-9

func vecEq(a, b vec3.T) bool {
	return math.Abs(a[0]-b[0]) < testEps &&
		math.Abs(a[1]-b[1]) < testEps &&
		math.Abs(a[2]-b[2]) < testEps
}

func line(t *testing.T, from, to vec3.T) spline.Spline {
	s, err := spline.NewLinear([]vec3.T{from, to})
	require.NoError(t, err)
	return s
}

func TestFrameAlongZ(t *testing.T) {
	s := line(t, vec3.T{0, 0, 0}, vec3.T{0, 0, 10})

	op, err := Frame(s, 0.5)
	require.NoError(t, err)
	assert.True(t, op.Rotation.EpsEqual(mat.Identity(3), testEps), "%v", op.Rotation)
	assert.True(t, vecEq(op.Position, vec3.T{0, 0, 5}))

	got, err := op.LocalToWorld(&vec3.T{1, 2, 0})
	require.NoError(t, err)
	assert.True(t, vecEq(got, vec3.T{1, 2, 5}), "got %v", got)
}

func TestFrameAlongX(t *testing.T) {
	s := line(t, vec3.T{0, 0, 0}, vec3.T{10, 0, 0})
	op, err := Frame(s, 0.2)
	require.NoError(t, err)

	table := []struct {
		local, world vec3.T
	}{
		{vec3.T{0, 0, 0}, vec3.T{2, 0, 0}},
		{vec3.T{1, 0, 0}, vec3.T{2, 0, 1}},
		{vec3.T{0, 1, 0}, vec3.T{2, 1, 0}},
		{vec3.T{0, 0, 1}, vec3.T{1, 0, 0}},
	}

	// Rows are [binormal; normal; forward] and LocalToWorld applies them
	// as Position + Rotation * p.
	want := mat.NewMatrix(3, 3)
	require.NoError(t, want.SetRow(0, 0, 0, -1))
	require.NoError(t, want.SetRow(1, 0, 1, 0))
	require.NoError(t, want.SetRow(2, 1, 0, 0))
	assert.True(t, op.Rotation.EpsEqual(want, testEps), "%v", op.Rotation)

	for i, test := range table {
		got, err := op.LocalToWorld(&test.local)
		require.NoError(t, err)
		if !vecEq(got, test.world) {
			t.Errorf("%d) LocalToWorld(%v) -> %v instead of %v",
				i+1, test.local, got, test.world)
		}
	}

	assert.True(t, vecEq(op.Forward(), vec3.T{1, 0, 0}))
}

func TestFramesOrthonormal(t *testing.T) {
	s, err := spline.NewCatmullRom([]vec3.T{
		{2, 4, 0}, {7, 0, 20}, {12, -4, 5}, {-12, 0, 17}, {-20, 2, 5},
	})
	require.NoError(t, err)

	us := spline.Schedule(float64(s.Segments()), 0.1)
	ops, degenerate := Frames(s, us)
	require.Len(t, ops, len(us))
	assert.Zero(t, degenerate)

	for i, op := range ops {
		rows := make([]vec3.T, 3)
		for r := range rows {
			rows[r], err = op.Rotation.RowVec3(r)
			require.NoError(t, err)
			assert.InDelta(t, 1, rows[r].Length(), testEps, "%d) row %d", i+1, r)
		}
		assert.InDelta(t, 0, vec3.Dot(&rows[0], &rows[1]), testEps)
		assert.InDelta(t, 0, vec3.Dot(&rows[0], &rows[2]), testEps)
		assert.InDelta(t, 0, vec3.Dot(&rows[1], &rows[2]), testEps)

		tan := s.Tangent(us[i])
		assert.True(t, vecEq(rows[2], tan), "%d) forward %v != tangent %v", i+1, rows[2], tan)

		// The binormal stays horizontal.
		assert.InDelta(t, 0, rows[0][1], testEps)
	}
}

func TestWorldToLocal(t *testing.T) {
	s := line(t, vec3.T{1, 2, 3}, vec3.T{4, 6, 3})
	op, err := Frame(s, 0.3)
	require.NoError(t, err)

	for _, p := range []vec3.T{{0, 0, 0}, {1, -2, 0.5}, {-3, 0.25, 7}} {
		world, err := op.LocalToWorld(&p)
		require.NoError(t, err)
		local, err := op.WorldToLocal(&world)
		require.NoError(t, err)
		assert.True(t, vecEq(local, p), "round trip of %v gave %v", p, local)
	}

	op.Rotation = mat.NewMatrix(3, 3)
	_, err = op.WorldToLocal(&vec3.T{1, 1, 1})
	assert.ErrorIs(t, err, mat.ErrSingular)
}

func TestDirections(t *testing.T) {
	s := line(t, vec3.T{5, 5, 5}, vec3.T{15, 5, 5})
	op, err := Frame(s, 0)
	require.NoError(t, err)

	d := vec3.T{0, 1, 0}
	got, err := op.WorldToLocalDirection(&d)
	require.NoError(t, err)
	assert.True(t, vecEq(got, vec3.T{0, 1, 0}), "got %v", got)

	d = vec3.T{1, 0, 0}
	got, err = op.LocalToWorldDirection(&d)
	require.NoError(t, err)
	assert.True(t, vecEq(got, vec3.T{0, 0, 1}), "got %v", got)

	got, err = op.WorldToLocalDirection(&d)
	require.NoError(t, err)
	assert.True(t, vecEq(got, vec3.T{0, 0, 1}), "got %v", got)

	d = vec3.T{0, 0, 1}
	got, err = op.LocalToWorldDirection(&d)
	require.NoError(t, err)
	assert.True(t, vecEq(got, vec3.T{-1, 0, 0}), "got %v", got)

	op.Rotation = mat.NewMatrix(2, 2)
	_, err = op.LocalToWorld(&d)
	assert.ErrorIs(t, err, mat.ErrDimensionMismatch)
}

func TestDegenerateFrame(t *testing.T) {
	s := line(t, vec3.T{0, 0, 0}, vec3.T{0, 5, 0})

	op, err := Frame(s, 0.5)
	assert.ErrorIs(t, err, mat.ErrDegenerateBasis)
	require.NotNil(t, op.Rotation)
	assert.True(t, vecEq(op.Forward(), vec3.T{0, 1, 0}))

	// The substitute basis is still usable.
	out, err := op.LocalToWorld(&vec3.T{1, 0, 0})
	require.NoError(t, err)
	rel := vec3.Sub(&out, &op.Position)
	assert.InDelta(t, 1, rel.Length(), testEps)
	assert.True(t, vecEq(rel, vec3.T{0, 1, 0}), "got %v", rel)

	us := []float64{0, 0.5, 1}
	buf := make([]OrientedPoint, len(us))
	ops, degenerate := Frames(s, us, buf)
	assert.Equal(t, 3, degenerate)
	assert.Equal(t, buf, ops)
}

func TestGrid(t *testing.T) {
	g := NewGrid(4, 6)
	assert.Equal(t, 24, g.Length)

	table := []struct {
		loop, corner, idx int
		ok                bool
	}{
		{0, 0, 0, true},
		{0, 5, 5, true},
		{1, 0, 6, true},
		{3, 5, 23, true},
		{4, 0, -1, false},
		{0, 6, -1, false},
		{-1, 2, -1, false},
	}

	for i, test := range table {
		idx, ok := g.IdxCheck(test.loop, test.corner)
		if idx != test.idx || ok != test.ok {
			t.Errorf("%d) IdxCheck(%d, %d) -> (%d, %v) instead of (%d, %v)",
				i+1, test.loop, test.corner, idx, ok, test.idx, test.ok)
		}
		if ok {
			l, c := g.Coords(idx)
			assert.Equal(t, test.loop, l)
			assert.Equal(t, test.corner, c)
		}
	}
}
