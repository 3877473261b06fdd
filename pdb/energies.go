package pdb

import (
	"fmt"
	"strconv"
	"strings"
)

// energyTable accumulates the per residue rows of a Rosetta pose energies
// table, which looks like:
//
//	#BEGIN_POSE_ENERGIES_TABLE design.pdb
//	label fa_atr fa_rep ... total
//	weights 1 0.55 ... NA
//	pose -512.3 41.7 ... -301.2
//	MET:NtermProteinFull_1 -3.1 0.2 ... -1.9
//	GLU_2 ...
//	#END_POSE_ENERGIES_TABLE design.pdb
//
// Only the 'total' column is kept.
type energyTable struct {
	column int
	totals []float64
}

func (t *energyTable) parse(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "label":
		t.column = -1
		for i, f := range fields {
			if f == "total" {
				t.column = i
			}
		}
		if t.column < 0 {
			return fmt.Errorf("pose energies table has no 'total' column")
		}
		return nil
	case "weights", "pose":
		return nil
	}
	if t.column <= 0 || t.column >= len(fields) {
		return fmt.Errorf("malformed pose energies row '%s'", line)
	}
	total, err := strconv.ParseFloat(fields[t.column], 64)
	if err != nil {
		return fmt.Errorf("pose energies row '%s': %w", fields[0], err)
	}
	t.totals = append(t.totals, total)
	return nil
}
