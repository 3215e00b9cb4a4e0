package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gravflow/internal/trajectory"
)

// Store keeps evaluation runs on disk, one directory per run with a
// metadata.json and a trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Bodies      int                `json:"bodies"`
	Steps       int                `json:"steps"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Softening   float64            `json:"softening"`
	Masses      []float64          `json:"masses"`
	Diagnostics map[string]float64 `json:"diagnostics"`
	Elapsed     time.Duration      `json:"elapsed_ns"`
}

// Save writes a run directory and returns its ID. The CSV layout is one
// row per output time: time, then six state columns per body in input
// order.
func (s *Store) Save(meta RunMetadata, times []float64, result *trajectory.Tensor) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	tt, n, _ := result.Shape()
	meta.Steps = tt
	meta.Bodies = n

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	comps := []string{"x", "y", "z", "vx", "vy", "vz"}
	for i := 0; i < n; i++ {
		for _, c := range comps {
			header = append(header, fmt.Sprintf("b%d_%s", i, c))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for ti := 0; ti < tt; ti++ {
		row := []string{strconv.FormatFloat(times[ti], 'g', -1, 64)}
		for _, val := range result.Row(ti) {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads back a run's output grid and state rows. Each row
// has six components per body, matching the evaluator's tensor layout.
func (s *Store) LoadTrajectory(runID string) (times []float64, rows [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	times = make([]float64, 0, len(records)-1)
	rows = make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: run %s: bad value %q", runID, field)
			}
			row = append(row, val)
		}

		times = append(times, t)
		rows = append(rows, row)
	}

	return times, rows, nil
}
