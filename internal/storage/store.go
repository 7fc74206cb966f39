package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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

// RunInfo is what the caller knows about a run before saving it.
type RunInfo struct {
	Name       string
	Integrator string
	Dt         float64
	Seed       int64
	// Steps is how many integration steps ran; recordings may keep fewer.
	Steps int
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Samples    int                `json:"samples"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Masses     [3]float64         `json:"masses"`
	Colors     [3][3]float64      `json:"colors"`
	Metrics    map[string]float64 `json:"metrics"`
	Error      string             `json:"error,omitempty"`
}

// StateRecord is one row of states.csv.
type StateRecord struct {
	Time float64 `csv:"time"`
	X1   float64 `csv:"x1"`
	Y1   float64 `csv:"y1"`
	Z1   float64 `csv:"z1"`
	VX1  float64 `csv:"vx1"`
	VY1  float64 `csv:"vy1"`
	VZ1  float64 `csv:"vz1"`
	X2   float64 `csv:"x2"`
	Y2   float64 `csv:"y2"`
	Z2   float64 `csv:"z2"`
	VX2  float64 `csv:"vx2"`
	VY2  float64 `csv:"vy2"`
	VZ2  float64 `csv:"vz2"`
	X3   float64 `csv:"x3"`
	Y3   float64 `csv:"y3"`
	Z3   float64 `csv:"z3"`
	VX3  float64 `csv:"vx3"`
	VY3  float64 `csv:"vy3"`
	VZ3  float64 `csv:"vz3"`
}

func newRecord(t float64, y dynamo.State) *StateRecord {
	return &StateRecord{
		Time: t,
		X1:   y[0].X, Y1: y[0].Y, Z1: y[0].Z,
		VX1: y[1].X, VY1: y[1].Y, VZ1: y[1].Z,
		X2: y[2].X, Y2: y[2].Y, Z2: y[2].Z,
		VX2: y[3].X, VY2: y[3].Y, VZ2: y[3].Z,
		X3: y[4].X, Y3: y[4].Y, Z3: y[4].Z,
		VX3: y[5].X, VY3: y[5].Y, VZ3: y[5].Z,
	}
}

func (r *StateRecord) State() dynamo.State {
	var y dynamo.State
	y[0].X, y[0].Y, y[0].Z = r.X1, r.Y1, r.Z1
	y[1].X, y[1].Y, y[1].Z = r.VX1, r.VY1, r.VZ1
	y[2].X, y[2].Y, y[2].Z = r.X2, r.Y2, r.Z2
	y[3].X, y[3].Y, y[3].Z = r.VX2, r.VY2, r.VZ2
	y[4].X, y[4].Y, y[4].Z = r.X3, r.Y3, r.Z3
	y[5].X, y[5].Y, y[5].Z = r.VX3, r.VY3, r.VZ3
	return y
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	name := info.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		Seed:       info.Seed,
		Dt:         info.Dt,
		Steps:      info.Steps,
		Samples:    len(result.States),
		Integrator: info.Integrator,
		Masses:     result.Masses,
		Colors:     result.Colors,
		Metrics:    result.Metrics,
	}
	if n := len(result.Times); n > 0 {
		meta.Duration = result.Times[n-1] - result.Times[0]
	}
	if result.Err != nil {
		meta.Error = result.Err.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	records := make([]*StateRecord, len(result.States))
	for i, y := range result.States {
		records[i] = newRecord(result.Times[i], y)
	}
	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", fmt.Errorf("writing states: %w", err)
	}

	return runID, nil
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var records []*StateRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []dynamo.State{}, []float64{}, nil
		}
		return nil, nil, fmt.Errorf("reading states: %w", err)
	}

	states := make([]dynamo.State, len(records))
	times := make([]float64, len(records))
	for i, r := range records {
		states[i] = r.State()
		times[i] = r.Time
	}
	return states, times, nil
}

// LoadResult rebuilds a recorded run.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{
		States:  states,
		Times:   times,
		Masses:  meta.Masses,
		Colors:  meta.Colors,
		Metrics: meta.Metrics,
	}, nil
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
