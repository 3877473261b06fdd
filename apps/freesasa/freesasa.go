// Package freesasa runs the freesasa program to compute solvent accessible
// surface areas and parses its per residue (RSA) output.
package freesasa

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/cmd"

	"github.com/lpsd/remodel/pdb"
)

// Config locates the freesasa executable.
type Config struct {
	Exec string

	// Args are passed before the input file.
	Args []string

	// When true, the command is echoed to stderr and freesasa's stderr is
	// mapped to the current process' stderr.
	Verbose bool
}

var Default = Config{Exec: "freesasa"}

// Residue is one RES line of RSA output. Areas are absolute, in square
// angstroms. Relative areas are NaN when freesasa has no reference value for
// the residue type.
type Residue struct {
	Name  string
	Chain byte
	Num   int

	All, Side, Main, Apolar, Polar                float64
	RelAll, RelSide, RelMain, RelApolar, RelPolar float64
}

// Run computes the SASA of every residue in the PDB file at pdbPath.
func (conf Config) Run(pdbPath string) ([]Residue, error) {
	args := append(append([]string(nil), conf.Args...), "--format=rsa", pdbPath)
	c := cmd.New(conf.Exec, args...)
	var stdout bytes.Buffer
	c.Cmd.Stdout = &stdout
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("running '%s' on '%s': %w", conf.Exec, pdbPath, err)
	}
	return Read(&stdout)
}

// Read parses the RES lines of RSA formatted output.
func Read(r io.Reader) ([]Residue, error) {
	var residues []Residue
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "RES ") {
			continue
		}
		res, err := parseRes(line)
		if err != nil {
			return nil, err
		}
		residues = append(residues, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return residues, nil
}

func parseRes(line string) (Residue, error) {
	if len(line) < 80 {
		line += strings.Repeat(" ", 80-len(line))
	}
	num, err := strconv.Atoi(strings.TrimSpace(line[9:13]))
	if err != nil {
		return Residue{}, fmt.Errorf("bad residue number in RSA line '%s': %w", line, err)
	}
	res := Residue{
		Name:  strings.TrimSpace(line[4:7]),
		Chain: line[8],
		Num:   num,
	}

	fields := []struct {
		dst        *float64
		start, end int
	}{
		{&res.All, 13, 22}, {&res.RelAll, 22, 29},
		{&res.Side, 29, 35}, {&res.RelSide, 35, 41},
		{&res.Main, 41, 48}, {&res.RelMain, 48, 54},
		{&res.Apolar, 54, 61}, {&res.RelApolar, 61, 67},
		{&res.Polar, 67, 74}, {&res.RelPolar, 74, 80},
	}
	for _, f := range fields {
		s := strings.TrimSpace(line[f.start:f.end])
		if s == "N/A" || s == "" {
			*f.dst = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Residue{}, fmt.Errorf("bad area '%s' in RSA line '%s': %w", s, line, err)
		}
		*f.dst = v
	}
	return res, nil
}

// Calculator computes per residue areas of structures with freesasa.
// Hydrophobic area is freesasa's apolar area.
type Calculator struct {
	Config
}

func (c Calculator) SidechainSASA(s pdb.Structure) ([]float64, error) {
	residues, err := c.perResidue(s)
	if err != nil {
		return nil, err
	}
	side := make([]float64, len(residues))
	for i, r := range residues {
		side[i] = zeroNaN(r.Side)
	}
	return side, nil
}

func (c Calculator) ResidueSASA(s pdb.Structure) (total, hydrophobic []float64, err error) {
	residues, err := c.perResidue(s)
	if err != nil {
		return nil, nil, err
	}
	total = make([]float64, len(residues))
	hydrophobic = make([]float64, len(residues))
	for i, r := range residues {
		total[i] = zeroNaN(r.All)
		hydrophobic[i] = zeroNaN(r.Apolar)
	}
	return total, hydrophobic, nil
}

// perResidue runs freesasa on s and lines its output up with the residues
// of s. Residues freesasa skips get zero areas.
func (c Calculator) perResidue(s pdb.Structure) ([]Residue, error) {
	tmp, err := pdb.WriteTemp(s)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	out, err := c.Run(tmp)
	if err != nil {
		return nil, err
	}

	type key struct {
		chain byte
		num   int
	}
	byKey := make(map[key]Residue, len(out))
	for _, r := range out {
		byKey[key{r.Chain, r.Num}] = r
	}

	residues := make([]Residue, s.Len())
	for i := 1; i <= s.Len(); i++ {
		chain, num := pdb.WrittenID(s, i)
		residues[i-1] = byKey[key{chain, num}]
	}
	return residues, nil
}

func zeroNaN(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}
