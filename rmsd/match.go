package rmsd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lpsd/remodel/pdb"
)

// ErrSourceLonger is returned by MatchResidues when the source structure has
// more residues than the target.
var ErrSourceLonger = errors.New("source structure is longer than target structure")

type residuePair struct {
	source, target int
	dist           float64
}

// MatchResidues maps residues of target to residues of source by carbon-alpha
// proximity. The two structures should already be superimposed, and source
// must not be longer than target.
//
// Every source/target pair is considered in order of increasing CA-CA
// distance and is accepted when neither residue has been matched yet. Ties
// keep the order in which pairs were enumerated (source major). This stops as
// soon as every source residue has a partner, so the returned map from target
// index to source index has exactly source.Len() entries and is injective.
//
// N.B. This is greedy and so not a minimum weight bipartite matching. Results
// that depend on it (remodeled region RMSDs) are defined relative to this
// heuristic.
func MatchResidues(source, target pdb.Structure) (map[int]int, error) {
	ns, nt := source.Len(), target.Len()
	if ns > nt {
		return nil, fmt.Errorf("matching %d residues to %d residues: %w",
			ns, nt, ErrSourceLonger)
	}

	sourceCA, err := caAtoms(source)
	if err != nil {
		return nil, err
	}
	targetCA, err := caAtoms(target)
	if err != nil {
		return nil, err
	}

	pairs := make([]residuePair, 0, ns*nt)
	for i, a := range sourceCA {
		for j, b := range targetCA {
			pairs = append(pairs, residuePair{i + 1, j + 1, a.Dist(b)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].dist < pairs[j].dist
	})

	resMap := make(map[int]int, ns)
	claimed := make(map[int]bool, ns)
	for _, p := range pairs {
		if len(resMap) == ns {
			break
		}
		if _, ok := resMap[p.target]; ok || claimed[p.source] {
			continue
		}
		resMap[p.target] = p.source
		claimed[p.source] = true
	}
	return resMap, nil
}

func caAtoms(s pdb.Structure) ([]pdb.Coords, error) {
	cas := make([]pdb.Coords, s.Len())
	for i := range cas {
		ca, err := s.Atom(i+1, "CA")
		if err != nil {
			return nil, err
		}
		cas[i] = ca
	}
	return cas, nil
}
