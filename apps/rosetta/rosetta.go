// Package rosetta runs external per structure metric programs, such as
// Rosetta applications or scripts wrapping them, and adapts them to the
// filter collaborator interfaces.
//
// A metric program is invoked as
//
//	exec args... -s structure.pdb [-residues 1,2,3]
//
// and must print whitespace separated numbers to stdout: either a single
// value or one value per residue of the structure.
package rosetta

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/cmd"

	"github.com/lpsd/remodel/pdb"
)

// Metric is an external metric program.
type Metric struct {
	Exec string
	Args []string

	// When true, the command is echoed to stderr and the program's stderr is
	// mapped to the current process' stderr.
	Verbose bool
}

// Run runs the metric on s, restricted to residues when residues is not
// nil, and returns the numbers it prints.
func (m Metric) Run(s pdb.Structure, residues []int) ([]float64, error) {
	tmp, err := pdb.WriteTemp(s)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	args := append(append([]string(nil), m.Args...), "-s", tmp)
	if residues != nil {
		args = append(args, "-residues", joinInts(residues))
	}

	c := cmd.New(m.Exec, args...)
	var stdout bytes.Buffer
	c.Cmd.Stdout = &stdout
	if m.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("running '%s': %w", m.Exec, err)
	}
	return parseFloats(stdout.String())
}

// Scalar runs the metric and requires exactly one number.
func (m Metric) Scalar(s pdb.Structure, residues []int) (float64, error) {
	vals, err := m.Run(s, residues)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("'%s' printed %d values, expected one", m.Exec, len(vals))
	}
	return vals[0], nil
}

// PerResidue runs the metric on all of s and requires one number per
// residue.
func (m Metric) PerResidue(s pdb.Structure) ([]float64, error) {
	vals, err := m.Run(s, nil)
	if err != nil {
		return nil, err
	}
	if len(vals) != s.Len() {
		return nil, fmt.Errorf("'%s' printed %d values for %d residues",
			m.Exec, len(vals), s.Len())
	}
	return vals, nil
}

// BuriedUnsat counts buried unsatisfied hbonds per residue.
type BuriedUnsat struct{ Metric }

func (b BuriedUnsat) BuriedUnsats(s pdb.Structure) ([]float64, error) {
	return b.PerResidue(s)
}

// Oversaturated counts over-saturated hbond acceptors among a set of
// acceptor residues.
type Oversaturated struct{ Metric }

func (o Oversaturated) Oversaturated(s pdb.Structure, acceptors []int) (float64, error) {
	return o.Scalar(s, acceptors)
}

// Holes scores packing defects around a set of residues.
type Holes struct{ Metric }

func (h Holes) Holes(s pdb.Structure, residues []int) (float64, error) {
	return h.Scalar(s, residues)
}

// HelixComplementarity scores the shape complementarity of the helices in a
// set of residues.
type HelixComplementarity struct{ Metric }

func (h HelixComplementarity) HelixComplementarity(
	s pdb.Structure, residues []int) (float64, error) {

	return h.Scalar(s, residues)
}

func joinInts(xs []int) string {
	strs := make([]string, len(xs))
	for i, x := range xs {
		strs[i] = strconv.Itoa(x)
	}
	return strings.Join(strs, ",")
}

func parseFloats(out string) ([]float64, error) {
	fields := strings.Fields(out)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad metric value '%s': %w", f, err)
		}
		vals[i] = v
	}
	return vals, nil
}
