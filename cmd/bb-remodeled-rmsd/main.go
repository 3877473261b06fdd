package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lpsd/remodel/cmd/util"
	"github.com/lpsd/remodel/design"
	"github.com/lpsd/remodel/heatmap"
)

var (
	flagOut   = heatmap.DefaultFile
	flagPrint = false
)

func init() {
	flag.StringVar(&flagOut, "out", flagOut,
		"The PNG file the RMSD heat map is written to.")
	flag.BoolVar(&flagPrint, "print", flagPrint,
		"When set, the RMSD matrix is also written to stdout as\n"+
			"tab separated values.")

	util.FlagUse("verbose")
	util.FlagParse("design-dir [design-dir ...]", "")
	util.AssertLeastNArg(1)
}

func main() {
	designs := util.Designs(util.Inputs())
	if len(designs) == 0 {
		util.Fatalf("None of the given directories holds a usable design.")
	}

	total := len(designs) * len(designs)
	util.Verbosef("Comparing %d designs (%d pairs).", len(designs), total)
	progress := util.NewProgress(total)
	m, err := design.RemodeledRMSDs(designs, func(done, total int) {
		progress.JobDone(nil)
	})
	progress.Close()
	util.Assert(err, "Could not compute the RMSD matrix")

	labels := labelsOf(designs)
	util.Assert(heatmap.Save(flagOut, m, labels, heatmap.DefaultOptions),
		"Could not write heat map")
	util.Verbosef("Wrote '%s'.", flagOut)

	if flagPrint {
		printMatrix(m, labels)
	}
}

// labelsOf names each design by the last element of its directory path.
func labelsOf(designs []*design.Design) []string {
	labels := make([]string, len(designs))
	for i, d := range designs {
		labels[i] = filepath.Base(filepath.Clean(d.Name))
	}
	return labels
}

func printMatrix(m [][]float64, labels []string) {
	fmt.Fprintf(os.Stdout, "\t%s\n", strings.Join(labels, "\t"))
	for i, row := range m {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%f", v)
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\n", labels[i], strings.Join(cells, "\t"))
	}
}
