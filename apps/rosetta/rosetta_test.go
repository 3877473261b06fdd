package rosetta

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsd/remodel/filter"
	"github.com/lpsd/remodel/pdb"
	"github.com/lpsd/remodel/pdb/pdbtest"
)

var (
	_ filter.BuriedUnsatCalculator       = BuriedUnsat{}
	_ filter.OversaturatedAcceptorFilter = Oversaturated{}
	_ filter.HolesFilter                 = Holes{}
	_ filter.HelixComplementarityFilter  = HelixComplementarity{}
)

// fakeMetric writes a script that records its arguments and prints out.
// It returns the metric and the path of the recorded arguments.
func fakeMetric(t *testing.T, out string) (Metric, string) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	exe := filepath.Join(dir, "metric")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > '%s'\necho '%s'\n", argsFile, out)
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))
	return Metric{Exec: exe, Args: []string{"-mute", "all"}}, argsFile
}

func readArgs(t *testing.T, p string) []string {
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return strings.Fields(string(b))
}

func TestPerResidue(t *testing.T) {
	m, argsFile := fakeMetric(t, "1 0\n2 0")
	vals, err := BuriedUnsat{m}.BuriedUnsats(pdbtest.HelixEntry("h", 4))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 2, 0}, vals)

	args := readArgs(t, argsFile)
	require.Len(t, args, 4)
	assert.Equal(t, []string{"-mute", "all", "-s"}, args[:3])

	// The structure file is removed afterwards and held the structure.
	_, err = os.Stat(args[3])
	assert.True(t, os.IsNotExist(err))

	_, err = BuriedUnsat{m}.BuriedUnsats(pdbtest.HelixEntry("h", 3))
	assert.Error(t, err)
}

func TestScalar(t *testing.T) {
	m, argsFile := fakeMetric(t, "0.625")
	s := pdbtest.HelixEntry("h", 6)

	v, err := Holes{m}.Holes(s, []int{2, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.625, v)
	args := readArgs(t, argsFile)
	assert.Equal(t, []string{"-residues", "2,3,5"}, args[len(args)-2:])

	v, err = Oversaturated{m}.Oversaturated(s, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 0.625, v)

	v, err = HelixComplementarity{m}.HelixComplementarity(s, []int{4, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.625, v)
}

func TestVerboseKeepsOutput(t *testing.T) {
	m, _ := fakeMetric(t, "0.5")
	m.Verbose = true
	v, err := Holes{m}.Holes(pdbtest.HelixEntry("h", 3), []int{1})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestMissingExecutable(t *testing.T) {
	m := Metric{Exec: filepath.Join(t.TempDir(), "missing")}
	_, err := m.Run(pdbtest.HelixEntry("h", 3), nil)
	assert.Error(t, err)
}

func TestScalarWrongCount(t *testing.T) {
	m, _ := fakeMetric(t, "1 2")
	_, err := Holes{m}.Holes(pdbtest.HelixEntry("h", 3), []int{1})
	assert.Error(t, err)
}

func TestBadOutput(t *testing.T) {
	m, _ := fakeMetric(t, "nope")
	_, err := m.Run(pdbtest.HelixEntry("h", 3), nil)
	assert.Error(t, err)
}

func TestStructureIsWritten(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	copyTo := filepath.Join(dir, "seen.pdb")
	exe := filepath.Join(dir, "metric")
	// copy the file following -s, then print one value
	script := fmt.Sprintf(`#!/bin/sh
while [ $# -gt 0 ]; do
  if [ "$1" = "-s" ]; then cp "$2" '%s'; fi
  shift
done
echo 1
`, copyTo)
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))

	s := pdbtest.HelixEntry("h", 5)
	_, err := Metric{Exec: exe}.Scalar(s, nil)
	require.NoError(t, err)

	seen, err := pdb.New(copyTo)
	require.NoError(t, err)
	require.Equal(t, s.Len(), seen.Len())
	a, err := seen.Atom(3, "CA")
	require.NoError(t, err)
	b, _ := s.Atom(3, "CA")
	assert.InDelta(t, 0, a.Dist(b), 1e-3)
}
