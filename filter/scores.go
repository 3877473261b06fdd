package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"
)

// ErrNotFinite is returned by WriteScores for a NaN or infinite score, which
// JSON cannot represent.
var ErrNotFinite = errors.New("score is not a finite number")

// Scores holds the filter scores of one design. The JSON keys are the names
// downstream selection scripts expect.
type Scores struct {
	DesignableAverageEnergy float64 `json:"designable_residues_average_energy"`
	MovableAverageEnergy    float64 `json:"movable_residues_average_energy"`
	AllAverageEnergy        float64 `json:"all_average_energy"`

	DesignableMaxEnergy float64 `json:"designable_residues_max_energy"`
	MovableMaxEnergy    float64 `json:"movable_residues_max_energy"`
	AllMaxEnergy        float64 `json:"all_residues_max_energy"`

	DesignableBuriedUnsat float64 `json:"buried_unsat_for_designable_residues"`
	MovableBuriedUnsat    float64 `json:"buried_unsat_for_movable_residues"`
	AllBuriedUnsat        float64 `json:"buried_unsat_for_all_residues"`

	AllBackrubBuriedUnsat        float64 `json:"backrub_ensemble_consensus_buhs_for_all_residues"`
	DesignableBackrubBuriedUnsat float64 `json:"backrub_ensemble_consensus_buhs_for_designable_residues"`
	MovableBackrubBuriedUnsat    float64 `json:"backrub_ensemble_consensus_buhs_for_movable_residues"`

	DesignableOversaturated float64 `json:"num_over_saturated_hbond_acceptors_for_designable_residues"`
	MovableOversaturated    float64 `json:"num_over_saturated_hbond_acceptors_for_movable_residues"`
	AllOversaturated        float64 `json:"num_over_saturated_hbond_acceptors_for_all_residues"`

	DesignableHydrophobicSidechainSASA float64 `json:"hydrophobic_sasa_sc_for_designable_residues"`

	MovableHydrophobicSASA         float64 `json:"hydrophobic_sasa_for_movable_residues"`
	MovableAverageHydrophobicSASA  float64 `json:"average_hydrophobic_sasa_for_movable_residues"`
	MovableRelativeHydrophobicSASA float64 `json:"relative_hydrophobic_sasa_for_movable_residues"`

	DesignableHoles float64 `json:"designable_local_holes_score"`
	MovableHoles    float64 `json:"movable_local_holes_score"`
	AllHoles        float64 `json:"all_local_holes_score"`

	RemodeledHelixComplementarity float64 `json:"bb_remodeled_residues_helix_complementarity"`

	RemodeledWorstFragmentCRMSD float64 `json:"bb_remodeled_worst_fragment_crmsd"`
	RemodeledMeanFragmentCRMSD  float64 `json:"bb_remodeled_mean_fragment_crmsd"`
}

// WriteScores writes s to the file at path as a flat JSON object. Nothing is
// written when a score is not finite.
func WriteScores(path string, s *Scores) error {
	if err := s.checkFinite(); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing scores to '%s': %w", path, err)
	}
	return nil
}

// ReadScores reads a file written by WriteScores.
func ReadScores(path string) (*Scores, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := new(Scores)
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decoding scores in '%s': %w", path, err)
	}
	return s, nil
}

func (s *Scores) checkFinite() error {
	v := reflect.ValueOf(s).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i).Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			key := strings.Split(v.Type().Field(i).Tag.Get("json"), ",")[0]
			return fmt.Errorf("%s is %v: %w", key, f, ErrNotFinite)
		}
	}
	return nil
}
