package util

import (
	"github.com/lpsd/remodel/design"
)

// DesignLoad reads the design directory dir.
func DesignLoad(dir string) *design.Design {
	d, err := design.Load(dir)
	Assert(err, "Could not load design '%s'", dir)
	return d
}

// Designs loads every usable design directory in dirs. Skipped directories
// are reported with -verbose.
func Designs(dirs []string) []*design.Design {
	usable, skipped := design.Usable(dirs)
	for _, dir := range skipped {
		Verbosef("Skipping '%s': it needs both %s and %s.",
			dir, design.DesignFile, design.ManifestFile)
	}
	designs := make([]*design.Design, len(usable))
	for i, dir := range usable {
		designs[i] = DesignLoad(dir)
	}
	return designs
}
