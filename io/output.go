package io

import (
	"encoding/binary"
	"io"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/PhoenixofForce/SplineCoaster/mesh"
)

var end = binary.LittleEndian

/*
The binary STL format used for meshes is as follows:
    |-- 1 --||-- 2 --||-- ... 3 ... --|

    1 - ([80]byte) Free-form comment. We store the track name here, padded
        with zero bytes.
    2 - (uint32) Number of triangles.
    3 - ([]stlTriangle) One record per triangle: a unit face normal, the
        three corners in winding order, and an unused 16-bit attribute.
        All vectors are little endian float32 triples.
*/
type STLHeader struct {
	Comment [80]byte
	Count   uint32
}

type stlTriangle struct {
	Normal  [3]float32
	Corners [3][3]float32
	Attr    uint16
}

// Name returns the comment with trailing zero bytes removed.
func (hd *STLHeader) Name() string {
	n := len(hd.Comment)
	for n > 0 && hd.Comment[n-1] == 0 {
		n--
	}
	return string(hd.Comment[:n])
}

func newSTLHeader(name string, count int) STLHeader {
	hd := STLHeader{Count: uint32(count)}
	copy(hd.Comment[:], name)
	return hd
}

// faceNormal returns the unit normal of a counter-clockwise triangle.
// Degenerate triangles get a zero normal.
func faceNormal(tri *mesh.Triangle) [3]float32 {
	e1 := vec3.Sub(&tri[1], &tri[0])
	e2 := vec3.Sub(&tri[2], &tri[0])
	n := vec3.Cross(&e1, &e2)
	n.Normalize()
	return [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
}

// WriteSTL writes m to wr as a binary STL file. name is truncated to 80
// bytes.
func WriteSTL(wr io.Writer, m *mesh.Mesh, name string) error {
	hd := newSTLHeader(name, m.TriangleCount())
	if err := binary.Write(wr, end, &hd); err != nil {
		return err
	}

	buf := make([]stlTriangle, len(m.Triangles))
	for i := range m.Triangles {
		tri := &m.Triangles[i]
		buf[i].Normal = faceNormal(tri)
		for j := range tri {
			buf[i].Corners[j] = [3]float32{
				float32(tri[j][0]), float32(tri[j][1]), float32(tri[j][2]),
			}
		}
	}
	return binary.Write(wr, end, buf)
}
