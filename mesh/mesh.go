/*package mesh turns a 2D cross-section and a spline into a triangle mesh.

The outline is placed at a series of oriented frames along the spline, each
placement forming an edge loop, and consecutive edge loops are stitched
together with two triangles per pair of adjacent outline points. The result
is a flat list of triangles with duplicated vertices, ready to be uploaded
as a vertex buffer.
*/
package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ungerik/go3d/float64/vec3"
)

var (
	// ErrBadStep is returned when the sample step is not positive.
	ErrBadStep = errors.New("mesh: sample step must be positive")

	// ErrShortOutline is returned when an outline has fewer than two
	// points and so cannot form a single quad.
	ErrShortOutline = errors.New("mesh: outline needs at least two points")

	// ErrBadIndex is returned by Builder.AddTriangle for vertex indices
	// which were never added.
	ErrBadIndex = errors.New("mesh: vertex index out of range")
)

// Triangle is three world-space corners in winding order.
type Triangle [3]vec3.T

// Mesh is a flat triangle list. Vertices are not shared between triangles.
type Mesh struct {
	Triangles []Triangle
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// VertexCount returns the number of vertices in the mesh, three per
// triangle.
func (m *Mesh) VertexCount() int { return 3 * len(m.Triangles) }

// Vertices returns x, y, z for every vertex in order, the layout expected by
// a GPU vertex buffer.
func (m *Mesh) Vertices() []float32 {
	out := make([]float32, 0, 3*m.VertexCount())
	for _, tri := range m.Triangles {
		for _, v := range tri {
			out = append(out, float32(v[0]), float32(v[1]), float32(v[2]))
		}
	}
	return out
}

// WriteOBJ writes the mesh to w as a Wavefront OBJ object named "track".
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d triangles\no track\n", m.TriangleCount())
	for _, tri := range m.Triangles {
		for _, v := range tri {
			fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
		}
	}
	for i := range m.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", 3*i+1, 3*i+2, 3*i+3)
	}

	return bw.Flush()
}

// Builder accumulates vertices and triangles. Every call returns the index
// of what it added, so callers address vertices without tracking a cursor
// of their own.
type Builder struct {
	vertices  []vec3.T
	triangles []Triangle
}

// NewBuilder returns a Builder with room for the given number of vertices
// and triangles.
func NewBuilder(vertices, triangles int) *Builder {
	return &Builder{
		vertices:  make([]vec3.T, 0, vertices),
		triangles: make([]Triangle, 0, triangles),
	}
}

// AddVertex adds p and returns its index.
func (b *Builder) AddVertex(p vec3.T) int {
	b.vertices = append(b.vertices, p)
	return len(b.vertices) - 1
}

// AddTriangle adds the triangle with corners at the given vertex indices and
// returns the triangle's index.
func (b *Builder) AddTriangle(i, j, k int) (int, error) {
	for _, idx := range [3]int{i, j, k} {
		if idx < 0 || idx >= len(b.vertices) {
			return -1, fmt.Errorf(
				"AddTriangle(%d, %d, %d) with %d vertices: %w",
				i, j, k, len(b.vertices), ErrBadIndex,
			)
		}
	}

	b.triangles = append(b.triangles, Triangle{
		b.vertices[i], b.vertices[j], b.vertices[k],
	})
	return len(b.triangles) - 1, nil
}

// Build returns the mesh made of every triangle added so far. The Builder
// may continue to be used afterwards.
func (b *Builder) Build() *Mesh {
	return &Mesh{Triangles: append([]Triangle(nil), b.triangles...)}
}
