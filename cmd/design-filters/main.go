// design-filters computes the structural quality filter scores of one design
// and writes them to a JSON file.
//
// The design directory must hold design.pdb.gz, with its pose energies table,
// and design_info.json listing the 'bb_remodeled_residues',
// 'designable_residues' and 'repackable_residues'. Solvent accessible
// surfaces, hydrogen bond and packing metrics and fragment quality come from
// the external programs named in the site settings.
package main

import (
	"github.com/lpsd/remodel/apps/fragpick"
	"github.com/lpsd/remodel/apps/freesasa"
	"github.com/lpsd/remodel/apps/rosetta"
	"github.com/lpsd/remodel/backrub"
	"github.com/lpsd/remodel/cmd/util"
	"github.com/lpsd/remodel/filter"
	"github.com/lpsd/remodel/site"
)

func init() {
	util.FlagUse("verbose", "settings")
	util.FlagParse("design-dir out.json", "")
	util.AssertNArg(2)
}

func main() {
	dir, out := util.Arg(0), util.Arg(1)
	d := util.DesignLoad(dir)
	if len(d.Manifest.Designable) == 0 {
		util.Fatalf("Design '%s' has no designable residues.", dir)
	}

	c, err := collaborators(util.Settings, dir)
	util.Assert(err, "Could not set up the filters")

	util.Verbosef("Scoring '%s' (%d residues).", dir, d.Design.Len())
	scores, err := filter.Generate(c, d.Design,
		d.Manifest.Designable, d.Manifest.Repackable, d.Remodeled)
	util.Assert(err, "Could not compute filter scores for '%s'", dir)
	util.Assert(filter.WriteScores(out, scores),
		"Could not write filter scores")
}

func collaborators(s site.Settings, dir string) (filter.Collaborators, error) {
	mover, err := backrub.New(s.Backrub.Seed, s.Backrub.MaxAngle, s.Backrub.Steps)
	if err != nil {
		return filter.Collaborators{}, err
	}
	metric := func(c site.Command) rosetta.Metric {
		return rosetta.Metric{Exec: c.Exec, Args: c.Args, Verbose: s.Verbose}
	}
	workDir := s.FragmentPicker.WorkDir
	if len(workDir) == 0 {
		workDir = dir
	}

	return filter.Collaborators{
		Energy:        filter.TableEnergies{},
		BuriedUnsat:   rosetta.BuriedUnsat{Metric: metric(s.BuriedUnsat)},
		Oversaturated: rosetta.Oversaturated{Metric: metric(s.Oversaturated)},
		SASA: freesasa.Calculator{Config: freesasa.Config{
			Exec:    s.FreeSASA.Exec,
			Args:    s.FreeSASA.Args,
			Verbose: s.Verbose,
		}},
		Holes: rosetta.Holes{Metric: metric(s.Holes)},
		Helix: rosetta.HelixComplementarity{
			Metric: metric(s.HelixComplementarity),
		},
		Fragments: fragpick.Config{
			Exec:    s.FragmentPicker.Exec,
			Args:    s.FragmentPicker.Args,
			WorkDir: workDir,
			Verbose: s.Verbose,
		},
		Backrub: mover,
	}, nil
}
