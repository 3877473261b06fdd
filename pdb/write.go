package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
)

// Write writes s as ATOM/HETATM records followed by TER and END.
// Residues without a sequence number are numbered by position.
func Write(w io.Writer, s Structure) error {
	buf := bufio.NewWriter(w)
	serial := 1
	for i := 1; i <= s.Len(); i++ {
		r := s.Residue(i)
		chain, num := WrittenID(s, i)
		icode := r.InsertionCode
		if icode == 0 {
			icode = ' '
		}
		for _, a := range r.Atoms {
			record := "ATOM"
			if a.Het {
				record = "HETATM"
			}
			fmt.Fprintf(buf,
				"%-6s%5d %-4s %3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
				record, serial%100000, atomField(a.Name), r.Name, chain, num, icode,
				a.Coords[0], a.Coords[1], a.Coords[2], 1.0, 0.0, a.Element)
			serial++
		}
	}
	fmt.Fprintln(buf, "TER")
	fmt.Fprintln(buf, "END")
	return buf.Flush()
}

// WrittenID returns the chain and residue number Write gives residue i.
func WrittenID(s Structure, i int) (chain byte, num int) {
	r := s.Residue(i)
	chain, num = r.Chain, r.SequenceNum
	if chain == 0 {
		chain = 'A'
	}
	if num == 0 {
		num = i
	}
	return chain, num
}

// WriteFile writes s to the file at p, gzip compressing it if p ends
// with ".gz".
func WriteFile(p string, s Structure) (err error) {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if path.Ext(p) != ".gz" {
		return Write(f, s)
	}
	gz := gzip.NewWriter(f)
	if err := Write(gz, s); err != nil {
		return err
	}
	return gz.Close()
}

// WriteTemp writes s to a new temporary PDB file and returns its path.
// The caller is responsible for removing it.
func WriteTemp(s Structure) (string, error) {
	f, err := os.CreateTemp("", "remodel-*.pdb")
	if err != nil {
		return "", err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// atomField pads an atom name the way PDB files align them: names shorter
// than four characters start in column 14.
func atomField(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	return " " + name
}
