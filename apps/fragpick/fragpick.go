// Package fragpick runs a Rosetta style fragment picker on the sequence of a
// design and reads back how well the picked fragments fit the design's own
// backbone.
//
// The picker is given the design's sequence as a FASTA file and the design
// itself as the native structure, and is asked to describe the 200 best 9mer
// fragments at each query position in a fragment score file. The CRMSD
// column of that file measures how far each fragment is from the design.
package fragpick

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/cmd"

	"github.com/lpsd/remodel/pdb"
)

// Files written into the work directory while picking. Both are removed
// after a successful run.
const (
	FastaFile = "design.fasta"
	ScoreFile = "frags.fsc.200.9mers"
)

// Config locates the fragment picker.
type Config struct {
	Exec string

	// Args are passed before the arguments naming the inputs and outputs.
	// They usually point to the fragment database and scoring weights.
	Args []string

	// WorkDir is where the temporary files are written and the picker is run.
	// The current directory is used when empty.
	WorkDir string

	// When true, the command is echoed to stderr and the picker's output is
	// mapped to the current process' stdout and stderr.
	Verbose bool
}

// Fragment is one line of a fragment score file.
type Fragment struct {
	QueryPos int
	CRMSD    float64
}

// Pick writes the sequence of s to a FASTA file, runs the picker for the
// given query positions and returns the fragments it describes.
func (conf Config) Pick(s pdb.Structure, positions []int) ([]Fragment, error) {
	dir := conf.WorkDir
	if dir == "" {
		dir = "."
	}
	fasta := filepath.Join(dir, FastaFile)
	scores := filepath.Join(dir, ScoreFile)

	if err := writeFasta(fasta, s); err != nil {
		return nil, err
	}
	native, err := pdb.WriteTemp(s)
	if err != nil {
		return nil, err
	}
	defer os.Remove(native)

	args := append([]string(nil), conf.Args...)
	args = append(args,
		"-in:file:fasta", FastaFile,
		"-in:file:s", native,
		"-frags:frag_sizes", "9",
		"-frags:n_frags", "200",
		"-frags:describe_fragments", "frags.fsc",
		"-out:file:frag_prefix", "frags",
		"-frags:picking:query_pos")
	for _, p := range positions {
		args = append(args, strconv.Itoa(p))
	}

	c := cmd.New(conf.Exec, args...)
	c.Cmd.Dir = dir
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stdout = os.Stdout
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("running fragment picker '%s': %w", conf.Exec, err)
	}

	f, err := os.Open(scores)
	if err != nil {
		return nil, err
	}
	frags, err := ReadScores(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", scores, err)
	}

	if err := os.Remove(fasta); err != nil {
		return nil, err
	}
	if err := os.Remove(scores); err != nil {
		return nil, err
	}
	return frags, nil
}

// PositionCRMSDs returns the smallest fragment CRMSD at each position.
func (conf Config) PositionCRMSDs(s pdb.Structure, positions []int) ([]float64, error) {
	frags, err := conf.Pick(s, positions)
	if err != nil {
		return nil, err
	}
	return BestCRMSDs(frags, positions)
}

// BestCRMSDs returns, for each position in order, the smallest CRMSD of the
// fragments starting there. A position without fragments is an error.
func BestCRMSDs(frags []Fragment, positions []int) ([]float64, error) {
	best := make(map[int]float64)
	for _, f := range frags {
		if b, ok := best[f.QueryPos]; !ok || f.CRMSD < b {
			best[f.QueryPos] = f.CRMSD
		}
	}
	crmsds := make([]float64, len(positions))
	for i, p := range positions {
		b, ok := best[p]
		if !ok {
			return nil, fmt.Errorf("no fragments were picked at position %d", p)
		}
		crmsds[i] = b
	}
	return crmsds, nil
}

// ReadScores reads a fragment score file. The columns are named by a header
// line starting with '#' which must have 'query_pos' and 'FragmentCrmsd'
// columns.
func ReadScores(r io.Reader) ([]Fragment, error) {
	posCol, crmsdCol := -1, -1
	var frags []Fragment

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if line[0] == '#' {
			for i, name := range strings.Fields(line[1:]) {
				switch name {
				case "query_pos":
					posCol = i
				case "FragmentCrmsd":
					crmsdCol = i
				}
			}
			continue
		}
		if posCol < 0 || crmsdCol < 0 {
			return nil, errMissingColumns
		}

		fields := strings.Fields(line)
		if len(fields) <= posCol || len(fields) <= crmsdCol {
			return nil, fmt.Errorf("short fragment score line '%s'", line)
		}
		pos, err := strconv.Atoi(fields[posCol])
		if err != nil {
			return nil, fmt.Errorf("bad query position in '%s': %w", line, err)
		}
		crmsd, err := strconv.ParseFloat(fields[crmsdCol], 64)
		if err != nil {
			return nil, fmt.Errorf("bad CRMSD in '%s': %w", line, err)
		}
		frags = append(frags, Fragment{QueryPos: pos, CRMSD: crmsd})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frags, nil
}

var errMissingColumns = errors.New(
	"fragment score file has no header with 'query_pos' and 'FragmentCrmsd'")

func writeFasta(p string, s pdb.Structure) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := pdb.WriteFasta(f, "design", s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
