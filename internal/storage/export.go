package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// ExportData is the JSON export layout: the tensor as nested
// times × bodies × components arrays.
type ExportData struct {
	Scenario    string             `json:"scenario"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Masses      []float64          `json:"masses"`
	Times       []float64          `json:"times"`
	States      [][][]float64      `json:"states"`
	Diagnostics map[string]float64 `json:"diagnostics"`
}

// ExportJSON writes a saved run as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	times, rows, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	states := make([][][]float64, len(rows))
	for ti, row := range rows {
		n := len(row) / 6
		states[ti] = make([][]float64, n)
		for i := 0; i < n; i++ {
			states[ti][i] = row[i*6 : (i+1)*6]
		}
	}

	data := ExportData{
		Scenario:    meta.Scenario,
		Integrator:  meta.Integrator,
		Dt:          meta.Dt,
		Masses:      meta.Masses,
		Times:       times,
		States:      states,
		Diagnostics: meta.Diagnostics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV streams a saved run's trajectory.csv as-is.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
