// Package storage persists completed runs as a directory per run holding
// metadata.json and snapshots.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/heatsim/internal/solver"
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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Length      float64            `json:"length"`
	Alpha       float64            `json:"alpha"`
	Nodes       int                `json:"nodes"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Initial     string             `json:"initial"`
	Boundary    string             `json:"boundary"`
	Ratio       float64            `json:"stability_ratio"`
	RecordEvery int                `json:"record_every"`
	Snapshots   int                `json:"snapshots"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the run under a fresh ID and returns it. meta.ID, Timestamp,
// RecordEvery and Snapshots are filled from the result.
func (s *Store) Save(meta RunMetadata, result *solver.Result) (string, error) {
	runID := fmt.Sprintf("heat_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.RecordEvery = result.RecordEvery
	meta.Snapshots = len(result.Fields)

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "snapshots.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Fields) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.Fields[0] {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, f := range result.Fields {
		row := make([]string, 0, len(f)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, v := range f {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
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

// LoadSnapshots reads back the recorded fields and their timestamps.
func (s *Store) LoadSnapshots(runID string) ([]solver.Field, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "snapshots.csv")
	file, err := os.Open(csvPath)
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
		return []solver.Field{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	fields := make([]solver.Field, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		f := make(solver.Field, 0, len(record)-1)
		for _, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: corrupt snapshot value %q in %s: %w", cell, runID, err)
			}
			f = append(f, v)
		}

		times = append(times, t)
		fields = append(fields, f)
	}

	return fields, times, nil
}
