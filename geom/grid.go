package geom

// Grid provides an interface for reasoning over a 1D slice of vertices as
// if it were a 2D grid of edge loops. Loop l, corner c is stored at index
// l*Corners + c.
type Grid struct {
	Loops, Corners int
	Length         int
}

// NewGrid returns a new Grid instance.
func NewGrid(loops, corners int) *Grid {
	g := &Grid{}
	g.Init(loops, corners)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(loops, corners int) {
	g.Loops = loops
	g.Corners = corners
	g.Length = loops * corners
}

// Idx returns the slice index corresponding to a loop and corner.
func (g *Grid) Idx(loop, corner int) int {
	return loop*g.Corners + corner
}

// IdxCheck returns an index and true if the given coordinates are valid and
// false otherwise.
func (g *Grid) IdxCheck(loop, corner int) (idx int, ok bool) {
	if !g.BoundsCheck(loop, corner) {
		return -1, false
	}
	return g.Idx(loop, corner), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(loop, corner int) bool {
	return 0 <= loop && loop < g.Loops && 0 <= corner && corner < g.Corners
}

// Coords returns the loop and corner of a slice index.
func (g *Grid) Coords(idx int) (loop, corner int) {
	return idx / g.Corners, idx % g.Corners
}
