package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// Entry represents a single model read from a PDB file. Its residues are
// numbered by position, starting at 1, regardless of the residue sequence
// numbers found in the file. This is the same numbering a modeling toolkit
// uses for a pose, and it is the numbering used by design manifests.
//
// Entry satisfies the Structure interface.
type Entry struct {
	Path     string
	Residues []*Residue

	// Energies holds the per residue 'total' column of a Rosetta pose
	// energies table, if the file had one. Energies[0] corresponds to
	// residue 1.
	Energies []float64
}

// New creates a new PDB Entry from a file. If the file cannot be read, or
// there is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func New(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading '%s': %w", fileName, err)
		}
		defer gz.Close()
		reader = gz
	}

	entry, err := Read(reader)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", fileName, err)
	}
	entry.Path = fileName
	return entry, nil
}

// Read parses ATOM and HETATM records from the first model in r. Waters are
// skipped. A Rosetta pose energies table, if present, is read into Energies.
func Read(r io.Reader) (*Entry, error) {
	entry := &Entry{Residues: make([]*Residue, 0, 100)}

	var last *Residue
	inTable := false
	var table energyTable

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()

		if inTable {
			if strings.HasPrefix(line, "#END_POSE_ENERGIES_TABLE") {
				inTable = false
				continue
			}
			if err := table.parse(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			continue
		}
		if strings.HasPrefix(line, "#BEGIN_POSE_ENERGIES_TABLE") {
			inTable = true
			continue
		}

		if len(line) < 6 {
			continue
		}

		// The record name is always in the first six columns.
		switch strings.TrimSpace(line[0:6]) {
		case "ENDMDL":
			// Only the first model is of interest.
			if len(entry.Residues) > 0 {
				entry.Energies = table.totals
				return entry, scanner.Err()
			}
		case "ATOM", "HETATM":
			atom, key, err := parseAtom(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			if key.name == "HOH" || key.name == "WAT" {
				continue
			}
			if last == nil || last.key() != key {
				last = &Residue{
					Name:          key.name,
					Chain:         key.chain,
					SequenceNum:   key.seqnum,
					InsertionCode: key.icode,
					Atoms:         make([]Atom, 0, 8),
				}
				entry.Residues = append(entry.Residues, last)
			}
			last.Atoms = append(last.Atoms, atom)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	entry.Energies = table.totals
	return entry, nil
}

// residueKey identifies the residue an ATOM record belongs to.
type residueKey struct {
	name   string
	chain  byte
	seqnum int
	icode  byte
}

// parseAtom reads the fixed columns of an ATOM or HETATM record.
//
// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
func parseAtom(line string) (Atom, residueKey, error) {
	if len(line) < 54 {
		return Atom{}, residueKey{}, fmt.Errorf(
			"ATOM record is too short (%d columns): '%s'", len(line), line)
	}
	var key residueKey
	key.name = strings.TrimSpace(line[17:20])
	key.chain = line[21]
	key.icode = line[26]

	snum := strings.TrimSpace(line[22:26])
	num, err := strconv.Atoi(snum)
	if err != nil {
		return Atom{}, key, fmt.Errorf(
			"could not parse residue number '%s': %w", snum, err)
	}
	key.seqnum = num

	atom := Atom{Name: strings.TrimSpace(line[12:16]), Het: line[0] == 'H'}
	for i, cols := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
		s := strings.TrimSpace(line[cols[0]:cols[1]])
		atom.Coords[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return Atom{}, key, fmt.Errorf(
				"could not parse coordinate '%s': %w", s, err)
		}
	}
	if len(line) >= 78 {
		atom.Element = strings.TrimSpace(line[76:78])
	}
	return atom, key, nil
}
