/*
bb-remodeled-rmsd compares the backbone remodeled region of every design
against the lowest energy structure predicted for every design and draws the
resulting RMSD matrix as a heat map.

Each argument is a design directory. A design directory must contain the
designed structure, design.pdb.gz, and a design_info.json file listing the
backbone remodeled residues under 'bb_remodeled_residues'. It may also contain
lowest_energy_model.pdb, the lowest energy structure predicted for the
design's sequence; when it is missing, the design itself stands in for it.
Directories without both required files are skipped.

Usage:
	bb-remodeled-rmsd [flags] design-dir [design-dir ...]

A single '-' reads the design directories from stdin, one per line.

Details

For the design i and the prediction j, the prediction is first superimposed
onto the design using the backbone (N, CA and C) atoms of the residues that
were not remodeled. The two designs must therefore have the same number of
fixed residues. Residues of the two structures are then paired up by CA
proximity, and the RMSD is computed over the backbone atoms of the pairs
whose residue is remodeled in the longer structure.

The superposition follows the Kabsch algorithm: the optimal rotation is
derived from the singular value decomposition of the covariance matrix of the
two centered point sets.

The matrix is drawn with designs along the x axis and predictions along the
y axis on a blue-white-red scale from 0 to 5 angstroms.
*/
package main
