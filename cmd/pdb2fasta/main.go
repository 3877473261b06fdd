// pdb2fasta writes the amino acid sequence of a PDB file as FASTA, the way
// design-filters hands a design's sequence to the fragment picker.
package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lpsd/remodel/cmd/util"
	"github.com/lpsd/remodel/pdb"
)

var flagHeader = ""

func init() {
	flag.StringVar(&flagHeader, "header", flagHeader,
		"The FASTA header. When empty, the PDB file name without its\n"+
			"extensions is used.")

	util.FlagUse("verbose")
	util.FlagParse("in-pdb-file [out-fasta-file]", "")
	if util.NArg() < 1 || util.NArg() > 2 {
		util.Usage()
	}
}

func main() {
	entry, err := pdb.New(util.Arg(0))
	util.Assert(err, "Could not read PDB file '%s'", util.Arg(0))
	if entry.Len() == 0 {
		util.Fatalf("Could not find any residues in '%s'.", util.Arg(0))
	}

	header := flagHeader
	if len(header) == 0 {
		header = strings.TrimSuffix(filepath.Base(entry.Path), ".gz")
		header = strings.TrimSuffix(header, filepath.Ext(header))
	}

	var out io.Writer = os.Stdout
	if util.NArg() == 2 {
		f := util.CreateFile(util.Arg(1))
		defer f.Close()
		out = f
	}
	util.Assert(pdb.WriteFasta(out, header, entry), "Could not write FASTA")
	util.Verbosef("%d residues.", entry.Len())
}
