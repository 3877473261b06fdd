package design

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lpsd/remodel/pdb"
)

// The files a design directory may contain.
const (
	DesignFile   = "design.pdb.gz"
	LowestFile   = "lowest_energy_model.pdb"
	ManifestFile = "design_info.json"
)

// Design is a loaded design directory.
type Design struct {
	// Name is the design directory path as it was given.
	Name string

	// Design is the designed structure.
	Design pdb.Structure

	// Lowest is the lowest energy structure predicted for the design's
	// sequence. It is a copy of Design when no prediction exists.
	Lowest pdb.Structure

	Manifest Manifest

	// Remodeled and Fixed partition 1..Design.Len().
	Remodeled, Fixed []int
}

// Load reads the design in dir.
func Load(dir string) (*Design, error) {
	entry, err := pdb.New(filepath.Join(dir, DesignFile))
	if err != nil {
		return nil, err
	}

	var lowest pdb.Structure
	lowestPath := filepath.Join(dir, LowestFile)
	_, err = os.Stat(lowestPath)
	switch {
	case err == nil:
		if lowest, err = pdb.New(lowestPath); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		lowest = entry.Clone()
	default:
		return nil, err
	}

	man, err := ReadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	rem, fixed, err := Partition(entry.Len(), man.Remodeled)
	if err != nil {
		return nil, fmt.Errorf("design '%s': %w", dir, err)
	}

	return &Design{
		Name:      dir,
		Design:    entry,
		Lowest:    lowest,
		Manifest:  man,
		Remodeled: rem,
		Fixed:     fixed,
	}, nil
}

// Usable returns the directories in dirs that have both a designed
// structure and a manifest, in their original order. The rest are skipped
// without error and returned separately.
func Usable(dirs []string) (usable, skipped []string) {
	for _, dir := range dirs {
		if exists(filepath.Join(dir, DesignFile)) &&
			exists(filepath.Join(dir, ManifestFile)) {
			usable = append(usable, dir)
		} else {
			skipped = append(skipped, dir)
		}
	}
	return
}

// LoadAll loads every usable directory in dirs. The first failure aborts.
func LoadAll(dirs []string) ([]*Design, error) {
	usable, _ := Usable(dirs)
	designs := make([]*Design, len(usable))
	for i, dir := range usable {
		d, err := Load(dir)
		if err != nil {
			return nil, err
		}
		designs[i] = d
	}
	return designs, nil
}

// Names returns the name of each design.
func Names(designs []*Design) []string {
	names := make([]string, len(designs))
	for i, d := range designs {
		names[i] = d.Name
	}
	return names
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
