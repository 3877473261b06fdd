// Package filter computes structural quality scores for a single design.
//
// The heavy lifting (energies, hydrogen bond analysis, surface areas, packing
// and fragment quality) is done by collaborators passed in explicitly
// through a Collaborators value. The filter pipeline only selects residues,
// aggregates the per residue values and records the results in a Scores
// value.
//
// All residue indices are 1-based.
package filter

import (
	"errors"
	"fmt"

	"github.com/lpsd/remodel/pdb"
)

// ErrNoEnergies is returned by TableEnergies for a structure that was not
// read with a pose energies table.
var ErrNoEnergies = errors.New("structure has no residue energies")

// EnergyScorer computes the total energy of every residue.
type EnergyScorer interface {
	// ResidueEnergies returns one energy per residue of s, in order.
	ResidueEnergies(s pdb.Structure) ([]float64, error)
}

// BuriedUnsatCalculator counts buried unsatisfied hydrogen bond donors and
// acceptors.
type BuriedUnsatCalculator interface {
	// BuriedUnsats returns one count per residue of s, in order.
	BuriedUnsats(s pdb.Structure) ([]float64, error)
}

// OversaturatedAcceptorFilter counts hydrogen bond acceptors that receive
// more hydrogen bonds than they can accept.
type OversaturatedAcceptorFilter interface {
	Oversaturated(s pdb.Structure, acceptors []int) (float64, error)
}

// SASACalculator computes solvent accessible surface areas.
type SASACalculator interface {
	// SidechainSASA returns the side chain SASA of every residue.
	SidechainSASA(s pdb.Structure) ([]float64, error)

	// ResidueSASA returns the total and the hydrophobic SASA of every residue.
	ResidueSASA(s pdb.Structure) (total, hydrophobic []float64, err error)
}

// HolesFilter scores packing defects around a set of residues. Lower is
// better.
type HolesFilter interface {
	Holes(s pdb.Structure, residues []int) (float64, error)
}

// HelixComplementarityFilter scores the shape complementarity of the helices
// in a set of residues. The residues must contain at least one helix.
type HelixComplementarityFilter interface {
	HelixComplementarity(s pdb.Structure, residues []int) (float64, error)
}

// FragmentQualityAnalyzer compares the local structure of a design against
// fragments picked for its sequence.
type FragmentQualityAnalyzer interface {
	// PositionCRMSDs returns, for each position in order, the best CRMSD of
	// the fragments starting at that position.
	PositionCRMSDs(s pdb.Structure, positions []int) ([]float64, error)
}

// Mover makes small local backbone perturbations.
type Mover interface {
	// NumSegments returns the number of segments of s that can be perturbed.
	NumSegments(s pdb.Structure) int

	// Perturb returns a new structure in which segment (in
	// [1, NumSegments(s)]) is perturbed. s is not modified.
	Perturb(s pdb.Structure, segment int) (pdb.Structure, error)
}

// Collaborators bundles the calculators the filter pipeline delegates to.
// They are constructed once by the caller and may be reused across designs.
type Collaborators struct {
	Energy        EnergyScorer
	BuriedUnsat   BuriedUnsatCalculator
	Oversaturated OversaturatedAcceptorFilter
	SASA          SASACalculator
	Holes         HolesFilter
	Helix         HelixComplementarityFilter
	Fragments     FragmentQualityAnalyzer
	Backrub       Mover
}

// TableEnergies scores structures with the per residue energies that were
// read along with them from a PDB file (see pdb.Entry.Energies).
type TableEnergies struct{}

func (TableEnergies) ResidueEnergies(s pdb.Structure) ([]float64, error) {
	e, ok := s.(*pdb.Entry)
	if !ok || len(e.Energies) == 0 {
		return nil, ErrNoEnergies
	}
	if len(e.Energies) != e.Len() {
		return nil, fmt.Errorf("'%s' has %d residue energies for %d residues",
			e.Path, len(e.Energies), e.Len())
	}
	return append([]float64(nil), e.Energies...), nil
}
