// Package site reads the site settings: where the external programs used by
// the design filters live and how they are invoked.
//
// Settings are stored as YAML. Relative executable paths that contain a path
// separator are resolved against the directory of the settings file; bare
// names are looked up in $PATH when run.
package site

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command is an external program and its leading arguments.
type Command struct {
	Exec string   `yaml:"exec"`
	Args []string `yaml:"args"`
}

// FragmentPicker configures fragment picking for fragment quality analysis.
type FragmentPicker struct {
	Command `yaml:",inline"`

	// WorkDir is where the query FASTA and fragment score files are written.
	// The current directory is used when empty.
	WorkDir string `yaml:"work_dir"`
}

// Backrub configures the backrub mover used for ensemble consensus buried
// unsatisfied hbonds.
type Backrub struct {
	Seed     int64   `yaml:"seed"`
	MaxAngle float64 `yaml:"max_angle"`
	Steps    int     `yaml:"steps"`
}

// Settings are the site settings.
type Settings struct {
	FreeSASA       Command        `yaml:"freesasa"`
	FragmentPicker FragmentPicker `yaml:"fragment_picker"`

	BuriedUnsat          Command `yaml:"buried_unsat"`
	Oversaturated        Command `yaml:"oversaturated_acceptors"`
	Holes                Command `yaml:"holes"`
	HelixComplementarity Command `yaml:"helix_complementarity"`

	Backrub Backrub `yaml:"backrub"`

	// Verbose echoes every external command to stderr.
	Verbose bool `yaml:"verbose"`
}

// Default are the settings used for anything a settings file leaves out.
var Default = Settings{
	FreeSASA: Command{Exec: "freesasa"},
	FragmentPicker: FragmentPicker{
		Command: Command{Exec: "fragment_picker"},
	},
	BuriedUnsat:          Command{Exec: "buried_unsats"},
	Oversaturated:        Command{Exec: "oversaturated_acceptors"},
	Holes:                Command{Exec: "holes"},
	HelixComplementarity: Command{Exec: "helix_complementarity"},
	Backrub: Backrub{
		Seed:     1,
		MaxAngle: 12,
		Steps:    12,
	},
}

// Load reads the settings file at path on top of Default. An empty file
// overrides nothing.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	s := Default
	if err := yaml.NewDecoder(f).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decoding site settings '%s': %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, c := range []*Command{
		&s.FreeSASA, &s.FragmentPicker.Command,
		&s.BuriedUnsat, &s.Oversaturated, &s.Holes, &s.HelixComplementarity,
	} {
		c.Exec = resolve(dir, c.Exec)
	}
	if s.FragmentPicker.WorkDir != "" && !filepath.IsAbs(s.FragmentPicker.WorkDir) {
		s.FragmentPicker.WorkDir = filepath.Join(dir, s.FragmentPicker.WorkDir)
	}
	return s, nil
}

func resolve(dir, exe string) string {
	if exe == "" || filepath.IsAbs(exe) || !strings.ContainsRune(exe, filepath.Separator) {
		return exe
	}
	return filepath.Join(dir, exe)
}
