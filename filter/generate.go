package filter

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/lpsd/remodel/pdb"
)

// PerturbationsPerSegment is the number of backrub perturbations generated
// for every segment by BackrubConsensus.
const PerturbationsPerSegment = 5

// Hydrophobic residues whose side chain surface counts towards
// Scores.DesignableHydrophobicSidechainSASA.
var Hydrophobic = map[string]bool{
	"ALA": true, "PRO": true, "VAL": true, "LEU": true, "ILE": true,
	"MET": true, "PHE": true, "TYR": true, "TRP": true,
}

// Generate computes every filter score of s.
//
// The movable residues are the designable residues followed by the
// repackable residues. All residues are 1..s.Len(). Each residue set used
// for an average, a maximum or a ratio must be non-empty.
//
// The first collaborator error aborts.
func Generate(c Collaborators, s pdb.Structure,
	designable, repackable, remodeled []int) (*Scores, error) {

	movable := make([]int, 0, len(designable)+len(repackable))
	movable = append(movable, designable...)
	movable = append(movable, repackable...)
	all := pdb.AllResidues(s)
	sets := []residueSet{
		{"designable", designable},
		{"movable", movable},
		{"all", all},
	}
	for _, set := range append(sets, residueSet{"remodeled", remodeled}) {
		if err := checkRange(s, set); err != nil {
			return nil, err
		}
	}

	sc := new(Scores)

	energies, err := c.Energy.ResidueEnergies(s)
	if err != nil {
		return nil, fmt.Errorf("scoring residue energies: %w", err)
	}
	if err := checkLen(s, "residue energies", energies); err != nil {
		return nil, err
	}
	averages := []*float64{
		&sc.DesignableAverageEnergy, &sc.MovableAverageEnergy, &sc.AllAverageEnergy}
	maxes := []*float64{
		&sc.DesignableMaxEnergy, &sc.MovableMaxEnergy, &sc.AllMaxEnergy}
	for i, set := range sets {
		if *averages[i], err = aggregate(stats.Mean, "average energy", energies, set); err != nil {
			return nil, err
		}
	}
	for i, set := range sets {
		if *maxes[i], err = aggregate(stats.Max, "max energy", energies, set); err != nil {
			return nil, err
		}
	}

	unsats, err := c.BuriedUnsat.BuriedUnsats(s)
	if err != nil {
		return nil, fmt.Errorf("counting buried unsatisfied hbonds: %w", err)
	}
	if err := checkLen(s, "buried unsats", unsats); err != nil {
		return nil, err
	}
	sc.DesignableBuriedUnsat = sum(unsats, designable)
	sc.MovableBuriedUnsat = sum(unsats, movable)
	sc.AllBuriedUnsat = sum(unsats, all)

	consensus, err := BackrubConsensus(c, s)
	if err != nil {
		return nil, err
	}
	sc.AllBackrubBuriedUnsat = sum(consensus, all)
	sc.DesignableBackrubBuriedUnsat = sum(consensus, designable)
	sc.MovableBackrubBuriedUnsat = sum(consensus, movable)

	oversaturated := []*float64{
		&sc.DesignableOversaturated, &sc.MovableOversaturated, &sc.AllOversaturated}
	for i, set := range sets {
		n, err := c.Oversaturated.Oversaturated(s, set.residues)
		if err != nil {
			return nil, fmt.Errorf("counting over-saturated acceptors of %s residues: %w",
				set.name, err)
		}
		*oversaturated[i] = n
	}

	scSASA, err := c.SASA.SidechainSASA(s)
	if err != nil {
		return nil, fmt.Errorf("computing side chain SASA: %w", err)
	}
	if err := checkLen(s, "side chain SASA", scSASA); err != nil {
		return nil, err
	}
	for _, i := range designable {
		if Hydrophobic[s.Residue(i).Name] {
			sc.DesignableHydrophobicSidechainSASA += scSASA[i-1]
		}
	}

	total, hydrophobic, err := c.SASA.ResidueSASA(s)
	if err != nil {
		return nil, fmt.Errorf("computing residue SASA: %w", err)
	}
	if err := checkLen(s, "residue SASA", total); err != nil {
		return nil, err
	}
	if err := checkLen(s, "hydrophobic residue SASA", hydrophobic); err != nil {
		return nil, err
	}
	if len(movable) == 0 {
		return nil, emptyErr("hydrophobic SASA", "movable")
	}
	movableTotal := sum(total, movable)
	sc.MovableHydrophobicSASA = sum(hydrophobic, movable)
	sc.MovableAverageHydrophobicSASA = sc.MovableHydrophobicSASA / float64(len(movable))
	if movableTotal == 0 {
		return nil, fmt.Errorf("relative hydrophobic SASA: movable residues have no surface")
	}
	sc.MovableRelativeHydrophobicSASA = sc.MovableHydrophobicSASA / movableTotal

	holes := []*float64{&sc.DesignableHoles, &sc.MovableHoles, &sc.AllHoles}
	for i, set := range sets {
		if *holes[i], err = holesPerAtom(c.Holes, s, set); err != nil {
			return nil, err
		}
	}

	sc.RemodeledHelixComplementarity, err = c.Helix.HelixComplementarity(s, remodeled)
	if err != nil {
		return nil, fmt.Errorf("scoring helix complementarity: %w", err)
	}

	crmsds, err := c.Fragments.PositionCRMSDs(s, remodeled)
	if err != nil {
		return nil, fmt.Errorf("analyzing fragment quality: %w", err)
	}
	if len(crmsds) == 0 {
		return nil, emptyErr("fragment CRMSD", "remodeled")
	}
	if sc.RemodeledWorstFragmentCRMSD, err = stats.Max(crmsds); err != nil {
		return nil, err
	}
	if sc.RemodeledMeanFragmentCRMSD, err = stats.Mean(crmsds); err != nil {
		return nil, err
	}
	return sc, nil
}

// BackrubConsensus returns, for every residue of s, the smallest number of
// buried unsatisfied hbonds over s itself and PerturbationsPerSegment
// perturbations of each backrub segment of s. s is not modified.
func BackrubConsensus(c Collaborators, s pdb.Structure) ([]float64, error) {
	baseline, err := c.BuriedUnsat.BuriedUnsats(s)
	if err != nil {
		return nil, fmt.Errorf("counting buried unsatisfied hbonds: %w", err)
	}
	if err := checkLen(s, "buried unsats", baseline); err != nil {
		return nil, err
	}
	consensus := append([]float64(nil), baseline...)

	segments := c.Backrub.NumSegments(s)
	for seg := 1; seg <= segments; seg++ {
		for k := 0; k < PerturbationsPerSegment; k++ {
			moved, err := c.Backrub.Perturb(s, seg)
			if err != nil {
				return nil, fmt.Errorf("perturbing backrub segment %d: %w", seg, err)
			}
			unsats, err := c.BuriedUnsat.BuriedUnsats(moved)
			if err != nil {
				return nil, fmt.Errorf(
					"counting buried unsatisfied hbonds of backrub segment %d: %w",
					seg, err)
			}
			if err := checkLen(s, "buried unsats", unsats); err != nil {
				return nil, err
			}
			for i, u := range unsats {
				if u < consensus[i] {
					consensus[i] = u
				}
			}
		}
	}
	return consensus, nil
}

type residueSet struct {
	name     string
	residues []int
}

func checkRange(s pdb.Structure, set residueSet) error {
	for _, i := range set.residues {
		if i < 1 || i > s.Len() {
			return fmt.Errorf("%s residue %d is outside of [1, %d]", set.name, i, s.Len())
		}
	}
	return nil
}

func checkLen(s pdb.Structure, what string, values []float64) error {
	if len(values) != s.Len() {
		return fmt.Errorf("got %d %s for %d residues", len(values), what, s.Len())
	}
	return nil
}

func emptyErr(what, set string) error {
	return fmt.Errorf("%s: there are no %s residues", what, set)
}

// aggregate applies f to the values of the residues in set.
func aggregate(f func(stats.Float64Data) (float64, error), what string,
	values []float64, set residueSet) (float64, error) {

	if len(set.residues) == 0 {
		return 0, emptyErr(what, set.name)
	}
	picked := make([]float64, len(set.residues))
	for k, i := range set.residues {
		picked[k] = values[i-1]
	}
	return f(picked)
}

func sum(values []float64, residues []int) float64 {
	var t float64
	for _, i := range residues {
		t += values[i-1]
	}
	return t
}

// holesPerAtom is the holes score of a residue set divided by its number of
// atoms.
func holesPerAtom(h HolesFilter, s pdb.Structure, set residueSet) (float64, error) {
	atoms := 0
	for _, i := range set.residues {
		atoms += s.Residue(i).NumAtoms()
	}
	if atoms == 0 {
		return 0, emptyErr("holes score", set.name)
	}
	score, err := h.Holes(s, set.residues)
	if err != nil {
		return 0, fmt.Errorf("scoring holes of %s residues: %w", set.name, err)
	}
	return score / float64(atoms), nil
}
