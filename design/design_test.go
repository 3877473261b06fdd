package design

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsd/remodel/pdb"
	"github.com/lpsd/remodel/pdb/pdbtest"
)

// writeDesign creates a design directory. A nil lowest means no prediction
// file is written.
func writeDesign(t *testing.T, dir string, designed, lowest pdb.Structure, remodeled []int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, pdb.WriteFile(filepath.Join(dir, DesignFile), designed))
	if lowest != nil {
		require.NoError(t, pdb.WriteFile(filepath.Join(dir, LowestFile), lowest))
	}
	b, err := json.Marshal(map[string]interface{}{"bb_remodeled_residues": remodeled})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), b, 0o644))
}

func TestPartition(t *testing.T) {
	for length := 1; length <= 12; length++ {
		remodeled := []int{}
		for i := 1; i <= length; i += 3 {
			remodeled = append(remodeled, i)
		}
		rem, fixed, err := Partition(length, remodeled)
		require.NoError(t, err)

		seen := make(map[int]int)
		for _, r := range rem {
			seen[r]++
		}
		for _, f := range fixed {
			seen[f]++
		}
		require.Len(t, seen, length)
		for i := 1; i <= length; i++ {
			assert.Equal(t, 1, seen[i], "length %d residue %d", length, i)
		}
	}

	rem, fixed, err := Partition(6, []int{5, 2, 2})
	require.NoError(t, err)
	if diff := cmp.Diff([]int{2, 5}, rem); diff != "" {
		t.Errorf("remodeled (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 3, 4, 6}, fixed); diff != "" {
		t.Errorf("fixed (-want +got):\n%s", diff)
	}

	_, _, err = Partition(6, []int{7})
	assert.Error(t, err)
	_, _, err = Partition(6, []int{0})
	assert.Error(t, err)
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()

	p := filepath.Join(dir, "with.json")
	require.NoError(t, os.WriteFile(p, []byte(
		`{"bb_remodeled_residues": [4, 5, 6], "designable_residues": [5], "other": "x"}`), 0o644))
	man, err := ReadManifest(p)
	require.NoError(t, err)
	assert.Equal(t, Manifest{Remodeled: []int{4, 5, 6}, Designable: []int{5}}, man)

	p = filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"bb_remodeled_residues": []}`), 0o644))
	man, err = ReadManifest(p)
	require.NoError(t, err)
	assert.Empty(t, man.Remodeled)

	p = filepath.Join(dir, "without.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"designable_residues": [1]}`), 0o644))
	_, err = ReadManifest(p)
	assert.True(t, errors.Is(err, ErrMissingRemodeled))
}

func TestLoadFallsBackToDesign(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d1")
	writeDesign(t, dir, pdbtest.HelixEntry("d1", 10), nil, []int{4, 5, 6})

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, d.Remodeled)
	assert.Equal(t, []int{1, 2, 3, 7, 8, 9, 10}, d.Fixed)
	require.Equal(t, d.Design.Len(), d.Lowest.Len())

	// The fallback is a copy, not the same structure.
	d.Lowest.Transform(func(p pdb.Coords) pdb.Coords { return p.Add(pdb.Coords{1, 0, 0}) })
	a, _ := d.Design.Atom(1, "CA")
	b, _ := d.Lowest.Atom(1, "CA")
	assert.InDelta(t, 1.0, a.Dist(b), 1e-9)

	self, err := RemodeledRMSDs([]*Design{d}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, self[0][0], 1e-6)
}

func TestLoadUnreadablePrediction(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d1")
	writeDesign(t, dir, pdbtest.HelixEntry("d1", 10), nil, []int{4, 5, 6})

	// A symlink to itself exists but can never be stat'ed.
	lowest := filepath.Join(dir, LowestFile)
	require.NoError(t, os.Symlink(lowest, lowest))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestIdenticalDesigns(t *testing.T) {
	root := t.TempDir()
	dirs := []string{filepath.Join(root, "a"), filepath.Join(root, "b")}
	for _, dir := range dirs {
		writeDesign(t, dir, pdbtest.HelixEntry(dir, 10), nil, []int{4, 5, 6})
	}

	designs, err := LoadAll(dirs)
	require.NoError(t, err)
	m, err := RemodeledRMSDs(designs, nil)
	require.NoError(t, err)

	require.Len(t, m, 2)
	for i := range m {
		require.Len(t, m[i], 2)
		for j := range m[i] {
			assert.InDelta(t, 0, m[i][j], 1e-6, "(%d, %d)", i, j)
		}
	}
}

func TestDifferentLengths(t *testing.T) {
	root := t.TempDir()
	a, b := filepath.Join(root, "a"), filepath.Join(root, "b")

	// b's first ten residues are a; 11 and 12 are extra and remodeled.
	writeDesign(t, a, pdbtest.HelixEntry(a, 10), nil, []int{4, 5, 6})
	writeDesign(t, b, pdbtest.HelixEntry(b, 12), nil, []int{4, 5, 6, 11, 12})

	designs, err := LoadAll([]string{a, b})
	require.NoError(t, err)
	m, err := RemodeledRMSDs(designs, nil)
	require.NoError(t, err)
	for i := range m {
		for j := range m[i] {
			assert.InDelta(t, 0, m[i][j], 1e-6, "(%d, %d)", i, j)
		}
	}
}

func TestShiftedPrediction(t *testing.T) {
	root := t.TempDir()
	a, b := filepath.Join(root, "a"), filepath.Join(root, "b")

	designed := pdbtest.HelixEntry(b, 10)
	predicted := designed.Clone().(*pdb.Entry)
	for _, r := range []int{4, 5, 6} {
		res := predicted.Residue(r)
		for i := range res.Atoms {
			res.Atoms[i].Coords = res.Atoms[i].Coords.Add(pdb.Coords{1, 0, 0})
		}
	}
	writeDesign(t, a, pdbtest.HelixEntry(a, 10), nil, []int{4, 5, 6})
	writeDesign(t, b, designed, predicted, []int{4, 5, 6})

	designs, err := LoadAll([]string{a, b})
	require.NoError(t, err)
	m, err := RemodeledRMSDs(designs, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0, m[0][0], 1e-6)
	assert.InDelta(t, 1, m[0][1], 2e-3)
	assert.InDelta(t, 0, m[1][0], 1e-6)
	assert.InDelta(t, 1, m[1][1], 2e-3)
}

func TestMissingDesignIsSkipped(t *testing.T) {
	root := t.TempDir()
	a, b, c := filepath.Join(root, "a"), filepath.Join(root, "b"), filepath.Join(root, "c")
	writeDesign(t, a, pdbtest.HelixEntry(a, 10), nil, []int{4})
	writeDesign(t, c, pdbtest.HelixEntry(c, 10), nil, []int{4})
	require.NoError(t, os.MkdirAll(b, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(b, ManifestFile),
		[]byte(`{"bb_remodeled_residues": [4]}`), 0o644))

	usable, skipped := Usable([]string{a, b, c})
	assert.Equal(t, []string{a, c}, usable)
	assert.Equal(t, []string{b}, skipped)

	designs, err := LoadAll([]string{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, []string{a, c}, Names(designs))

	var calls int
	m, err := RemodeledRMSDs(designs, func(done, total int) {
		calls++
		assert.Equal(t, 4, total)
		assert.Equal(t, calls, done)
	})
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, 4, calls)
}

func TestMismatchedFixedRegions(t *testing.T) {
	root := t.TempDir()
	a, b := filepath.Join(root, "a"), filepath.Join(root, "b")
	writeDesign(t, a, pdbtest.HelixEntry(a, 10), nil, []int{4, 5, 6})
	writeDesign(t, b, pdbtest.HelixEntry(b, 10), nil, []int{4, 5})

	designs, err := LoadAll([]string{a, b})
	require.NoError(t, err)
	_, err = RemodeledRMSDs(designs, nil)
	assert.Error(t, err)
}
