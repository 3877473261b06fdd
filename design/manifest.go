package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrMissingRemodeled is returned for a manifest without a
// 'bb_remodeled_residues' field.
var ErrMissingRemodeled = errors.New("manifest has no 'bb_remodeled_residues' field")

// Manifest is the content of a design's design_info.json. Residue indices
// are 1-based.
type Manifest struct {
	Remodeled  []int `json:"bb_remodeled_residues"`
	Designable []int `json:"designable_residues,omitempty"`
	Repackable []int `json:"repackable_residues,omitempty"`
}

// ReadManifest reads a design_info.json file.
func ReadManifest(p string) (Manifest, error) {
	var raw struct {
		Remodeled  *[]int `json:"bb_remodeled_residues"`
		Designable []int  `json:"designable_residues"`
		Repackable []int  `json:"repackable_residues"`
	}

	f, err := os.Open(p)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return Manifest{}, fmt.Errorf("decoding JSON in '%s': %w", p, err)
	}
	if raw.Remodeled == nil {
		return Manifest{}, fmt.Errorf("'%s': %w", p, ErrMissingRemodeled)
	}
	return Manifest{
		Remodeled:  *raw.Remodeled,
		Designable: raw.Designable,
		Repackable: raw.Repackable,
	}, nil
}

// Partition splits the residues 1..length into the backbone remodeled ones
// and the fixed ones. Both returned lists are sorted and together they cover
// 1..length exactly once. A remodeled index outside 1..length is an error.
func Partition(length int, remodeled []int) (rem, fixed []int, err error) {
	isRemodeled := make([]bool, length+1)
	for _, r := range remodeled {
		if r < 1 || r > length {
			return nil, nil, fmt.Errorf(
				"remodeled residue %d is outside of [1, %d]", r, length)
		}
		isRemodeled[r] = true
	}

	rem = make([]int, 0, len(remodeled))
	fixed = make([]int, 0, length)
	for i := 1; i <= length; i++ {
		if isRemodeled[i] {
			rem = append(rem, i)
		} else {
			fixed = append(fixed, i)
		}
	}
	return rem, fixed, nil
}

// indexSet is a set of residue indices.
type indexSet map[int]bool

func newIndexSet(residues []int) indexSet {
	s := make(indexSet, len(residues))
	for _, r := range residues {
		s[r] = true
	}
	return s
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
