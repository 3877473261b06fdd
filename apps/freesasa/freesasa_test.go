package freesasa

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsd/remodel/pdb/pdbtest"
)

var columnWidths = []int{9, 7, 6, 6, 7, 6, 7, 6, 7, 6}

// rsaLine formats a RES line with freesasa's column layout.
func rsaLine(name string, chain byte, num int, values ...string) string {
	line := fmt.Sprintf("RES %-3s %c%4d", name, chain, num)
	for i, v := range values {
		line += fmt.Sprintf("%*s", columnWidths[i], v)
	}
	return line
}

func sampleRSA() string {
	return strings.Join([]string{
		"REM  FreeSASA 2.0.3",
		"REM  Absolute and relative SASAs for input.pdb",
		"REM  RES _ NUM      All-atoms   Total-Side   Main-Chain    Non-polar    All polar",
		"REM                ABS   REL    ABS   REL    ABS   REL    ABS   REL    ABS   REL",
		rsaLine("ALA", 'A', 1, "107.95", "100.0", "69.41", "100.0", "38.54", "100.0",
			"69.41", "100.0", "38.54", "100.0"),
		rsaLine("GLY", 'A', 2, "20.00", "25.4", "0.00", "N/A", "20.00", "25.4",
			"12.50", "30.1", "7.50", "19.2"),
		rsaLine("LEU", 'A', 4, "150.25", "85.0", "120.00", "80.0", "30.25", "70.0",
			"140.00", "90.0", "10.25", "40.0"),
		"END  Absolute sums over single chains surface",
		"CHAIN  1 A      278.20       189.41        88.79       221.91        56.29",
		"",
		"TOTAL          278.20       189.41        88.79       221.91        56.29",
	}, "\n") + "\n"
}

func TestRead(t *testing.T) {
	residues, err := Read(strings.NewReader(sampleRSA()))
	require.NoError(t, err)
	require.Len(t, residues, 3)

	a := residues[0]
	assert.Equal(t, "ALA", a.Name)
	assert.Equal(t, byte('A'), a.Chain)
	assert.Equal(t, 1, a.Num)
	assert.Equal(t, 107.95, a.All)
	assert.Equal(t, 69.41, a.Side)
	assert.Equal(t, 38.54, a.Main)
	assert.Equal(t, 69.41, a.Apolar)
	assert.Equal(t, 38.54, a.Polar)
	assert.Equal(t, 100.0, a.RelPolar)

	g := residues[1]
	assert.Equal(t, 0.0, g.Side)
	assert.True(t, math.IsNaN(g.RelSide))
	assert.Equal(t, 4, residues[2].Num)
}

func TestReadBadNumber(t *testing.T) {
	_, err := Read(strings.NewReader("RES ALA A   x    1.00  1.0\n"))
	assert.Error(t, err)
}

// fakeFreesasa writes a script that prints out regardless of its arguments.
func fakeFreesasa(t *testing.T, out string) string {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	data := filepath.Join(dir, "out.rsa")
	require.NoError(t, os.WriteFile(data, []byte(out), 0o644))
	exe := filepath.Join(dir, "freesasa")
	script := fmt.Sprintf("#!/bin/sh\ncat '%s'\n", data)
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))
	return exe
}

func TestCalculator(t *testing.T) {
	c := Calculator{Config{Exec: fakeFreesasa(t, sampleRSA())}}
	s := pdbtest.HelixEntry("h", 4)

	side, err := c.SidechainSASA(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{69.41, 0, 0, 120}, side)

	total, hydrophobic, err := c.ResidueSASA(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{107.95, 20, 0, 150.25}, total)
	assert.Equal(t, []float64{69.41, 12.5, 0, 140}, hydrophobic)
}

func TestRunFails(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "freesasa")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\nexit 3\n"), 0o755))

	_, err := Config{Exec: exe}.Run(filepath.Join(dir, "x.pdb"))
	assert.Error(t, err)
}
