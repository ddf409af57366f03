package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID          string             `json:"id"`
	Mode        string             `json:"mode"`
	Dt          float64            `json:"dt"`
	Time        float64            `json:"time"`
	Steps       int                `json:"steps"`
	Params      map[string]float64 `json:"params,omitempty"`
	Z           []float64          `json:"z"`
	Initial     []float64          `json:"initial"`
	Final       []float64          `json:"final"`
	Coefficient []float64          `json:"coefficient"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	profile, err := s.LoadProfile(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:          meta.ID,
		Mode:        meta.Mode,
		Dt:          meta.Dt,
		Time:        meta.Time,
		Steps:       meta.Steps,
		Params:      meta.Params,
		Z:           profile.Z,
		Initial:     profile.Initial,
		Final:       profile.Final,
		Coefficient: profile.Coefficient,
		Metrics:     meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
