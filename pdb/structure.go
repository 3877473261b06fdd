package pdb

import (
	"fmt"
	"math"
)

// Structure is the capability set the analyses need from a protein model:
// residue count, per residue atom lookup, an in place rigid transform and
// a deep copy. Residue indices are 1-based.
//
// A Structure is not safe for concurrent mutation.
type Structure interface {
	// Len returns the number of residues.
	Len() int

	// Residue returns residue i, or nil if i is not in [1, Len()].
	Residue(i int) *Residue

	// Atom returns the coordinates of the named atom of residue i.
	Atom(i int, name string) (Coords, error)

	// Transform replaces every atom coordinate p with f(p).
	Transform(f func(Coords) Coords)

	// Clone returns a deep copy.
	Clone() Structure
}

// Coords is a point in three dimensional space.
type Coords [3]float64

func (a Coords) Add(b Coords) Coords {
	return Coords{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Coords) Sub(b Coords) Coords {
	return Coords{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Coords) Scale(f float64) Coords {
	return Coords{a[0] * f, a[1] * f, a[2] * f}
}

func (a Coords) Dot(b Coords) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Coords) Cross(b Coords) Coords {
	return Coords{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a Coords) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Dist returns the Euclidean distance between a and b.
func (a Coords) Dist(b Coords) float64 {
	return a.Sub(b).Norm()
}

// Atom is a single named atom.
type Atom struct {
	Name    string
	Element string
	Het     bool
	Coords
}

// Residue is a single residue with its atoms in file order.
type Residue struct {
	// Name is the three letter residue name, e.g., "ALA".
	Name          string
	Chain         byte
	SequenceNum   int
	InsertionCode byte
	Atoms         []Atom
}

func (r *Residue) key() residueKey {
	return residueKey{r.Name, r.Chain, r.SequenceNum, r.InsertionCode}
}

// NumAtoms returns the number of atoms in the residue.
func (r *Residue) NumAtoms() int {
	return len(r.Atoms)
}

// Atom returns the first atom with the given name.
func (r *Residue) Atom(name string) (Atom, bool) {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a, true
		}
	}
	return Atom{}, false
}

// OneLetter returns the single letter amino acid code, or 'X' if the residue
// is not a standard amino acid.
func (r *Residue) OneLetter() byte {
	if c, ok := AminoThreeToOne[r.Name]; ok {
		return c
	}
	return 'X'
}

func (e *Entry) Len() int {
	return len(e.Residues)
}

func (e *Entry) Residue(i int) *Residue {
	if i < 1 || i > len(e.Residues) {
		return nil
	}
	return e.Residues[i-1]
}

func (e *Entry) Atom(i int, name string) (Coords, error) {
	r := e.Residue(i)
	if r == nil {
		return Coords{}, fmt.Errorf("residue %d is out of range [1, %d] in '%s'",
			i, len(e.Residues), e.Path)
	}
	a, ok := r.Atom(name)
	if !ok {
		return Coords{}, fmt.Errorf("residue %d (%s) in '%s' has no atom '%s'",
			i, r.Name, e.Path, name)
	}
	return a.Coords, nil
}

func (e *Entry) Transform(f func(Coords) Coords) {
	for _, r := range e.Residues {
		for i := range r.Atoms {
			r.Atoms[i].Coords = f(r.Atoms[i].Coords)
		}
	}
}

func (e *Entry) Clone() Structure {
	c := &Entry{
		Path:     e.Path,
		Residues: make([]*Residue, len(e.Residues)),
	}
	for i, r := range e.Residues {
		cr := *r
		cr.Atoms = append([]Atom(nil), r.Atoms...)
		c.Residues[i] = &cr
	}
	if e.Energies != nil {
		c.Energies = append([]float64(nil), e.Energies...)
	}
	return c
}

// Sequence returns the one letter amino acid sequence of s.
func Sequence(s Structure) string {
	seq := make([]byte, s.Len())
	for i := 1; i <= s.Len(); i++ {
		seq[i-1] = s.Residue(i).OneLetter()
	}
	return string(seq)
}

// AllResidues returns the indices 1..s.Len().
func AllResidues(s Structure) []int {
	all := make([]int, s.Len())
	for i := range all {
		all[i] = i + 1
	}
	return all
}
