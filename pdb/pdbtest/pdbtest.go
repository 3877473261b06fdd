// Package pdbtest builds small in-memory structures for tests.
package pdbtest

import (
	"math"

	"github.com/lpsd/remodel/pdb"
)

// Backbone offsets from CA. They only need to be non-degenerate.
var (
	offN = pdb.Coords{-0.53, 1.36, 0.0}
	offC = pdb.Coords{1.52, 0.0, 0.0}
	offO = pdb.Coords{2.15, -1.05, 0.12}
)

// FromCA builds a structure with one ALA residue per CA position. Each
// residue gets N, CA, C and O atoms.
func FromCA(path string, cas []pdb.Coords) *pdb.Entry {
	e := &pdb.Entry{Path: path, Residues: make([]*pdb.Residue, len(cas))}
	for i, ca := range cas {
		e.Residues[i] = &pdb.Residue{
			Name:        "ALA",
			Chain:       'A',
			SequenceNum: i + 1,
			Atoms: []pdb.Atom{
				{Name: "N", Element: "N", Coords: ca.Add(offN)},
				{Name: "CA", Element: "C", Coords: ca},
				{Name: "C", Element: "C", Coords: ca.Add(offC)},
				{Name: "O", Element: "O", Coords: ca.Add(offO)},
			},
		}
	}
	return e
}

// Helix returns n CA positions on an ideal alpha helix: 100 degrees and
// 1.5 angstroms per residue on a 2.3 angstrom radius.
func Helix(n int) []pdb.Coords {
	cas := make([]pdb.Coords, n)
	for i := range cas {
		theta := float64(i) * 100 * math.Pi / 180
		cas[i] = pdb.Coords{2.3 * math.Cos(theta), 2.3 * math.Sin(theta), 1.5 * float64(i)}
	}
	return cas
}

// HelixEntry is FromCA(path, Helix(n)).
func HelixEntry(path string, n int) *pdb.Entry {
	return FromCA(path, Helix(n))
}

// Rotation returns the row-major rotation matrix for a rotation of angle
// radians about axis.
func Rotation(axis pdb.Coords, angle float64) [9]float64 {
	u := axis.Scale(1 / axis.Norm())
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := u[0], u[1], u[2]
	return [9]float64{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Rotate returns R·p + t.
func Rotate(r [9]float64, t, p pdb.Coords) pdb.Coords {
	return pdb.Coords{
		r[0]*p[0] + r[1]*p[1] + r[2]*p[2] + t[0],
		r[3]*p[0] + r[4]*p[1] + r[5]*p[2] + t[1],
		r[6]*p[0] + r[7]*p[1] + r[8]*p[2] + t[2],
	}
}
