package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gdesim/internal/sim"
)

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
	ID        string             `json:"id"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Input     string             `json:"input"`
	Dt        float64            `json:"dt"`
	Time      float64            `json:"time"`
	Coeff     float64            `json:"coeff"`
	Points    int                `json:"points"`
	Dz        float64            `json:"dz"`
	Steps     int                `json:"steps"`
	Params    map[string]float64 `json:"params,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// RunProfile is the per-point data of a stored run.
type RunProfile struct {
	Z           []float64
	Initial     []float64
	Final       []float64
	Coefficient []float64
}

// Save writes metadata.json, profile.csv and, when the run recorded any,
// snapshots.csv under a new run directory.
func (s *Store) Save(meta RunMetadata, z []float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Points = len(z)
	meta.Steps = result.Steps
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	rows := [][]string{{"z", "initial", "final", "coefficient"}}
	for i := range z {
		d := 0.0
		if i < len(result.Coefficient) {
			d = result.Coefficient[i]
		}
		rows = append(rows, []string{
			formatFloat(z[i]),
			formatFloat(result.Initial[i]),
			formatFloat(result.Final[i]),
			formatFloat(d),
		})
	}
	if err := writeCSV(filepath.Join(runDir, "profile.csv"), rows); err != nil {
		return "", err
	}

	if len(result.Snapshots) > 0 {
		rows = [][]string{{"step", "time"}}
		for i := range z {
			rows[0] = append(rows[0], fmt.Sprintf("x%d", i))
		}
		for _, snap := range result.Snapshots {
			row := []string{strconv.Itoa(snap.Step), formatFloat(snap.Time)}
			for _, v := range snap.Profile {
				row = append(row, formatFloat(v))
			}
			rows = append(rows, row)
		}
		if err := writeCSV(filepath.Join(runDir, "snapshots.csv"), rows); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns stored runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadProfile(runID string) (*RunProfile, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		return nil, err
	}

	p := &RunProfile{}
	for i := 1; i < len(records); i++ {
		vals, err := parseRow(records[i])
		if err != nil {
			return nil, fmt.Errorf("profile.csv row %d: %w", i, err)
		}
		if len(vals) < 4 {
			return nil, fmt.Errorf("profile.csv row %d: expected 4 columns, got %d", i, len(vals))
		}
		p.Z = append(p.Z, vals[0])
		p.Initial = append(p.Initial, vals[1])
		p.Final = append(p.Final, vals[2])
		p.Coefficient = append(p.Coefficient, vals[3])
	}

	return p, nil
}

// LoadSnapshots returns the recorded intermediate profiles, or none if the
// run did not record any.
func (s *Store) LoadSnapshots(runID string) ([]sim.Snapshot, error) {
	path := filepath.Join(s.baseDir, runID, "snapshots.csv")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	snaps := make([]sim.Snapshot, 0, len(records))
	for i := 1; i < len(records); i++ {
		vals, err := parseRow(records[i])
		if err != nil || len(vals) < 2 {
			return nil, fmt.Errorf("snapshots.csv row %d: malformed", i)
		}
		snaps = append(snaps, sim.Snapshot{
			Step:    int(vals[0]),
			Time:    vals[1],
			Profile: vals[2:],
		})
	}
	return snaps, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseRow(record []string) ([]float64, error) {
	vals := make([]float64, len(record))
	for j, s := range record {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		vals[j] = v
	}
	return vals, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
