package pdb

// BackboneAtoms are the main chain atoms used for superposition and RMSD,
// in the order they are extracted.
var BackboneAtoms = [...]string{"N", "CA", "C"}

// BackbonePoints returns the N, CA and C coordinates of each of the given
// residues, in the order the residues are given. Two point sets built from
// residue lists of the same length are therefore always comparable point by
// point.
func BackbonePoints(s Structure, residues []int) ([]Coords, error) {
	points := make([]Coords, 0, len(BackboneAtoms)*len(residues))
	for _, res := range residues {
		for _, name := range BackboneAtoms {
			p, err := s.Atom(res, name)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}
	return points, nil
}
