package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/PhoenixofForce/SplineCoaster/mesh"
)

// maxSTLTriangles bounds the count read from a header so that a corrupt
// file cannot request an enormous allocation.
const maxSTLTriangles = 1 << 26

// ReadSTLHeader reads the header of a binary STL stream.
func ReadSTLHeader(rd io.Reader) (*STLHeader, error) {
	hd := &STLHeader{}
	if err := binary.Read(rd, end, hd); err != nil {
		return nil, err
	}
	if hd.Count > maxSTLTriangles {
		return nil, fmt.Errorf(
			"STL header claims %d triangles, more than the limit of %d.",
			hd.Count, maxSTLTriangles,
		)
	}
	return hd, nil
}

// ReadSTL reads a mesh written by WriteSTL. Normals are discarded.
func ReadSTL(rd io.Reader) (*mesh.Mesh, *STLHeader, error) {
	hd, err := ReadSTLHeader(rd)
	if err != nil {
		return nil, nil, err
	}

	buf := make([]stlTriangle, hd.Count)
	if err := binary.Read(rd, end, buf); err != nil {
		return nil, nil, err
	}

	m := &mesh.Mesh{Triangles: make([]mesh.Triangle, len(buf))}
	for i := range buf {
		for j, c := range buf[i].Corners {
			m.Triangles[i][j] = vec3.T{float64(c[0]), float64(c[1]), float64(c[2])}
		}
	}
	return m, hd, nil
}

// WriteSTLFile writes m to the named file as binary STL.
func WriteSTLFile(fname string, m *mesh.Mesh, name string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteSTL(f, m, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteOBJFile writes m to the named file as Wavefront OBJ.
func WriteOBJFile(fname string, m *mesh.Mesh) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
