// Package storage persists session runs: one directory per run holding
// metadata.json and the sampled graph buffer as samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/physstate"
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
	ID        string    `json:"id"`
	Preset    string    `json:"preset"`
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"`
	Gravity   float64   `json:"gravity"`
	TimeScale float64   `json:"time_scale"`
	Objects   int       `json:"objects"`

	// readouts of the selected object at the end of the run
	Final map[string]float64 `json:"final,omitempty"`
}

var sampleHeader = []string{"time", "x", "y", "vx", "vy", "speed", "ke", "pe", "total"}

// Save writes a run directory and returns its id.
func (s *Store) Save(meta RunMetadata, samples []physstate.Sample) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{
			fmtFloat(sm.Time),
			fmtFloat(sm.Position.X), fmtFloat(sm.Position.Y),
			fmtFloat(sm.Velocity.X), fmtFloat(sm.Velocity.Y),
			fmtFloat(sm.Speed),
			fmtFloat(sm.KineticEnergy), fmtFloat(sm.PotentialEnergy), fmtFloat(sm.TotalEnergy),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

// LoadSamples reads a run's graph samples back, skipping malformed rows.
func (s *Store) LoadSamples(runID string) ([]physstate.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []physstate.Sample{}, nil
	}

	samples := make([]physstate.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(sampleHeader) {
			continue
		}
		vals := make([]float64, len(sampleHeader))
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, physstate.Sample{
			Time:            vals[0],
			Position:        engine.Vec2{X: vals[1], Y: vals[2]},
			Velocity:        engine.Vec2{X: vals[3], Y: vals[4]},
			Speed:           vals[5],
			KineticEnergy:   vals[6],
			PotentialEnergy: vals[7],
			TotalEnergy:     vals[8],
		})
	}

	return samples, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
