package design

import (
	"fmt"

	"github.com/lpsd/remodel/pdb"
	"github.com/lpsd/remodel/rmsd"
)

// Compare computes the backbone RMSD between the remodeled region of ref's
// designed structure and the remodeled region of mov's lowest energy
// prediction.
//
// mov.Lowest is first superimposed onto ref.Design by the backbones of the
// fixed residues of each (this moves mov.Lowest in place). The fixed
// residues of the two designs must therefore correspond one to one.
// Residues are then matched by CA proximity, mapping the longer structure
// (the target) onto the shorter one (the source), and only matched target
// residues that are remodeled in the target's design take part in the RMSD.
//
// When nothing is left to compare, the RMSD is zero.
func Compare(ref, mov *Design) (float64, error) {
	_, err := rmsd.SuperposeByResidues(mov.Lowest, mov.Fixed, ref.Design, ref.Fixed)
	if err != nil {
		return 0, fmt.Errorf("superimposing '%s' onto '%s' by fixed residues: %w",
			mov.Name, ref.Name, err)
	}

	var source, target pdb.Structure
	var targetRemodeled []int
	if ref.Design.Len() > mov.Lowest.Len() {
		source, target = mov.Lowest, ref.Design
		targetRemodeled = ref.Remodeled
	} else {
		source, target = ref.Design, mov.Lowest
		targetRemodeled = mov.Remodeled
	}

	resMap, err := rmsd.MatchResidues(source, target)
	if err != nil {
		return 0, err
	}

	remodeled := newIndexSet(targetRemodeled)
	var sourceResidues, targetResidues []int
	for _, t := range sortedKeys(resMap) {
		if remodeled[t] {
			targetResidues = append(targetResidues, t)
			sourceResidues = append(sourceResidues, resMap[t])
		}
	}
	return rmsd.Backbone(source, sourceResidues, target, targetResidues)
}

// RemodeledRMSDs returns the matrix whose (i, j) element is the remodeled
// region RMSD between design i and the lowest energy prediction of design j.
// Every ordered pair is computed, including i == j.
//
// If progress is not nil, it is called after each pair.
func RemodeledRMSDs(designs []*Design, progress func(done, total int)) ([][]float64, error) {
	n := len(designs)
	m := make([][]float64, n)
	for i := range designs {
		m[i] = make([]float64, n)
		for j := range designs {
			r, err := Compare(designs[i], designs[j])
			if err != nil {
				return nil, err
			}
			m[i][j] = r
			if progress != nil {
				progress(i*n+j+1, n*n)
			}
		}
	}
	return m, nil
}
