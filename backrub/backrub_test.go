package backrub

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsd/remodel/pdb"
	"github.com/lpsd/remodel/pdb/pdbtest"
)

func atom(t *testing.T, s pdb.Structure, i int, name string) pdb.Coords {
	t.Helper()
	p, err := s.Atom(i, name)
	require.NoError(t, err)
	return p
}

func TestNumSegments(t *testing.T) {
	m, err := New(1, DefaultMaxAngle, DefaultSteps)
	require.NoError(t, err)
	assert.Equal(t, 8, m.NumSegments(pdbtest.HelixEntry("h", 10)))
	assert.Equal(t, 1, m.NumSegments(pdbtest.HelixEntry("h", 3)))
	assert.Equal(t, 0, m.NumSegments(pdbtest.HelixEntry("h", 2)))
}

func TestRotateMovesOnlySegment(t *testing.T) {
	s := pdbtest.HelixEntry("h", 6)
	before := s.Clone()

	moved, err := Rotate(s, 2, 10)
	require.NoError(t, err)
	if diff := cmp.Diff(before, pdb.Structure(s)); diff != "" {
		t.Fatalf("input was modified (-before +after):\n%s", diff)
	}

	fixed := map[int][]string{
		1: {"N", "CA", "C", "O"},
		2: {"N", "CA"},
		4: {"CA", "C", "O"},
		5: {"N", "CA", "C", "O"},
		6: {"N", "CA", "C", "O"},
	}
	for i, names := range fixed {
		for _, name := range names {
			assert.Equal(t, atom(t, s, i, name), atom(t, moved, i, name),
				"residue %d atom %s", i, name)
		}
	}

	rotated := map[int][]string{
		2: {"C", "O"},
		3: {"N", "CA", "C", "O"},
		4: {"N"},
	}
	pivot1, pivot2 := atom(t, s, 2, "CA"), atom(t, s, 4, "CA")
	for i, names := range rotated {
		for _, name := range names {
			a, b := atom(t, s, i, name), atom(t, moved, i, name)
			assert.Greater(t, a.Dist(b), 1e-6, "residue %d atom %s", i, name)
			assert.InDelta(t, a.Dist(pivot1), b.Dist(pivot1), 1e-9)
			assert.InDelta(t, a.Dist(pivot2), b.Dist(pivot2), 1e-9)
		}
	}
}

func TestRotateInverse(t *testing.T) {
	s := pdbtest.HelixEntry("h", 5)
	there, err := Rotate(s, 3, 7.5)
	require.NoError(t, err)
	back, err := Rotate(there, 3, -7.5)
	require.NoError(t, err)

	for i := 1; i <= s.Len(); i++ {
		for _, a := range s.Residue(i).Atoms {
			assert.InDelta(t, 0, a.Coords.Dist(atom(t, back, i, a.Name)), 1e-9)
		}
	}

	same, err := Rotate(s, 1, 0)
	require.NoError(t, err)
	for i := 1; i <= s.Len(); i++ {
		for _, a := range s.Residue(i).Atoms {
			assert.InDelta(t, 0, a.Coords.Dist(atom(t, same, i, a.Name)), 1e-12)
		}
	}
}

func TestRotateSegmentRange(t *testing.T) {
	s := pdbtest.HelixEntry("h", 5)
	_, err := Rotate(s, 0, 1)
	assert.Error(t, err)
	_, err = Rotate(s, 4, 1)
	assert.Error(t, err)
}

func TestPerturbDeterministic(t *testing.T) {
	s := pdbtest.HelixEntry("h", 8)
	m1, err := New(42, DefaultMaxAngle, DefaultSteps)
	require.NoError(t, err)
	m2, err := New(42, DefaultMaxAngle, DefaultSteps)
	require.NoError(t, err)

	for seg := 1; seg <= m1.NumSegments(s); seg++ {
		p1, err := m1.Perturb(s, seg)
		require.NoError(t, err)
		p2, err := m2.Perturb(s, seg)
		require.NoError(t, err)
		if diff := cmp.Diff(p1, p2); diff != "" {
			t.Fatalf("segment %d differs (-first +second):\n%s", seg, diff)
		}
	}
}

func TestPerturbBounded(t *testing.T) {
	s := pdbtest.HelixEntry("h", 6)
	m, err := New(7, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.MaxAngle())

	// The largest allowed rotation bounds how far the middle CA can move.
	limit, err := Rotate(s, 2, 5)
	require.NoError(t, err)
	ca := atom(t, s, 3, "CA")
	maxDist := ca.Dist(atom(t, limit, 3, "CA"))
	for k := 0; k < 50; k++ {
		p, err := m.Perturb(s, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, ca.Dist(atom(t, p, 3, "CA")), maxDist+1e-9)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(1, 0, 5)
	assert.Error(t, err)
	_, err = New(1, 5, 0)
	assert.Error(t, err)
}
