// Package backrub makes small local backbone perturbations of the kind seen
// in high resolution crystal structures: a rigid rotation of a short backbone
// segment around the axis through the CA atoms that flank it.
//
// Segment k of a structure pivots on the CA atoms of residues k and k+2, so
// a structure with L residues has L-2 segments. Perturbing a segment rotates
// the C and O atoms of residue k, all atoms of residue k+1 and the N and H
// atoms of residue k+2. The pivots and everything outside the segment stay
// put, so bond lengths at the pivots are preserved.
package backrub

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mroth/weightedrand"

	"github.com/lpsd/remodel/pdb"
)

// Defaults used by New.
const (
	DefaultMaxAngle = 12.0
	DefaultSteps    = 12
)

// Mover perturbs backrub segments. The rotation angle is drawn from a
// discrete distribution over [-MaxAngle, MaxAngle] degrees whose weight falls
// off linearly from 0.
//
// A Mover is deterministic given its seed. It is not safe for concurrent use.
type Mover struct {
	maxAngle float64
	rng      *rand.Rand
	angles   *weightedrand.Chooser
}

// New returns a mover drawing angles from 2*steps+1 evenly spaced values in
// [-maxAngle, maxAngle].
func New(seed int64, maxAngle float64, steps int) (*Mover, error) {
	if maxAngle <= 0 || steps < 1 {
		return nil, fmt.Errorf("invalid backrub angle range: max %f degrees, %d steps",
			maxAngle, steps)
	}
	choices := make([]weightedrand.Choice, 0, 2*steps+1)
	for k := -steps; k <= steps; k++ {
		weight := uint(steps + 1 - abs(k))
		angle := maxAngle * float64(k) / float64(steps)
		choices = append(choices, weightedrand.NewChoice(angle, weight))
	}
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, err
	}
	return &Mover{
		maxAngle: maxAngle,
		rng:      rand.New(rand.NewSource(seed)),
		angles:   chooser,
	}, nil
}

// MaxAngle returns the largest rotation in degrees.
func (m *Mover) MaxAngle() float64 {
	return m.maxAngle
}

func (m *Mover) NumSegments(s pdb.Structure) int {
	if s.Len() < 3 {
		return 0
	}
	return s.Len() - 2
}

// Perturb returns a copy of s with segment rotated by a random angle.
func (m *Mover) Perturb(s pdb.Structure, segment int) (pdb.Structure, error) {
	angle := m.angles.PickSource(m.rng).(float64)
	return Rotate(s, segment, angle)
}

// Rotate returns a copy of s with segment rotated by angle degrees around its
// pivot axis.
func Rotate(s pdb.Structure, segment int, angle float64) (pdb.Structure, error) {
	if segment < 1 || segment > s.Len()-2 {
		return nil, fmt.Errorf("backrub segment %d is outside of [1, %d]",
			segment, s.Len()-2)
	}
	from, err := s.Atom(segment, "CA")
	if err != nil {
		return nil, err
	}
	to, err := s.Atom(segment+2, "CA")
	if err != nil {
		return nil, err
	}
	axis := to.Sub(from)
	if axis.Norm() == 0 {
		return nil, fmt.Errorf("backrub segment %d has coincident pivots", segment)
	}
	rot := rotation(from, axis.Scale(1/axis.Norm()), angle*math.Pi/180)

	c := s.Clone()
	moveAtoms(c.Residue(segment), rot, "C", "O")
	moveAtoms(c.Residue(segment+1), rot)
	moveAtoms(c.Residue(segment+2), rot, "N", "H")
	return c, nil
}

// moveAtoms applies f to the named atoms of r, or to all of them when no
// names are given.
func moveAtoms(r *pdb.Residue, f func(pdb.Coords) pdb.Coords, names ...string) {
	for i := range r.Atoms {
		if len(names) == 0 || contains(names, r.Atoms[i].Name) {
			r.Atoms[i].Coords = f(r.Atoms[i].Coords)
		}
	}
}

// rotation returns the rotation by theta radians around the line through
// origin with unit direction u.
func rotation(origin, u pdb.Coords, theta float64) func(pdb.Coords) pdb.Coords {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return func(p pdb.Coords) pdb.Coords {
		v := p.Sub(origin)
		r := v.Scale(cos).
			Add(u.Cross(v).Scale(sin)).
			Add(u.Scale(u.Dot(v) * (1 - cos)))
		return origin.Add(r)
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
