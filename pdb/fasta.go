package pdb

import (
	"bufio"
	"fmt"
	"io"
)

// FastaColumns is the line width of sequences written by WriteFasta.
var FastaColumns = 60

// WriteFasta writes the one letter sequence of s as a single FASTA record.
func WriteFasta(w io.Writer, name string, s Structure) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, ">%s\n", name)
	seq := Sequence(s)
	for len(seq) > FastaColumns {
		fmt.Fprintln(buf, seq[:FastaColumns])
		seq = seq[FastaColumns:]
	}
	if len(seq) > 0 {
		fmt.Fprintln(buf, seq)
	}
	return buf.Flush()
}
