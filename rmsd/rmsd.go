package rmsd

import (
	"fmt"
	"math"

	"github.com/lpsd/remodel/pdb"
)

// RMSD returns the root mean square deviation between two point sets that
// correspond by index, without moving either of them. The RMSD of two empty
// sets is zero.
func RMSD(points1, points2 []pdb.Coords) (float64, error) {
	if len(points1) != len(points2) {
		return 0, fmt.Errorf("computing the RMSD of %d points against %d points: %w",
			len(points1), len(points2), ErrLength)
	}
	if len(points1) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range points1 {
		d := points1[i].Sub(points2[i])
		sum += d.Dot(d)
	}
	return math.Sqrt(sum / float64(len(points1))), nil
}

// FitRMSD is the RMSD of points1 against points2 after points1 has been
// optimally superimposed onto points2. Neither slice is modified.
func FitRMSD(points1, points2 []pdb.Coords) (float64, error) {
	t, err := Superpose(points1, points2)
	if err != nil {
		return 0, err
	}
	moved := make([]pdb.Coords, len(points1))
	for i, p := range points1 {
		moved[i] = t.Point(p)
	}
	return RMSD(moved, points2)
}

// Backbone computes the RMSD between the backbone atoms of residues1 in s1
// and residues2 in s2, in their current positions. The residue lists
// correspond by index and must have the same length.
func Backbone(s1 pdb.Structure, residues1 []int,
	s2 pdb.Structure, residues2 []int) (float64, error) {

	if len(residues1) != len(residues2) {
		return 0, fmt.Errorf("comparing %d residues against %d residues: %w",
			len(residues1), len(residues2), ErrLength)
	}
	points1, err := pdb.BackbonePoints(s1, residues1)
	if err != nil {
		return 0, err
	}
	points2, err := pdb.BackbonePoints(s2, residues2)
	if err != nil {
		return 0, err
	}
	return RMSD(points1, points2)
}

// SuperposeByResidues moves source so that the backbone of sourceResidues
// is optimally superimposed onto the backbone of targetResidues in target.
// The transformation applied is returned.
func SuperposeByResidues(source pdb.Structure, sourceResidues []int,
	target pdb.Structure, targetResidues []int) (Transform, error) {

	if len(sourceResidues) != len(targetResidues) {
		return Transform{}, fmt.Errorf(
			"superimposing %d residues onto %d residues: %w",
			len(sourceResidues), len(targetResidues), ErrLength)
	}
	ps, err := pdb.BackbonePoints(source, sourceResidues)
	if err != nil {
		return Transform{}, err
	}
	pt, err := pdb.BackbonePoints(target, targetResidues)
	if err != nil {
		return Transform{}, err
	}
	t, err := Superpose(ps, pt)
	if err != nil {
		return Transform{}, err
	}
	t.Apply(source)
	return t, nil
}
