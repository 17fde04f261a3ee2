package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/attractors/internal/sim"
)

const (
	metadataFile = "metadata.json"
	verticesFile = "vertices.csv"
)

var vertexHeader = []string{"particle", "offset", "x", "y", "z", "r", "g", "b", "alpha", "size"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Metadata describes a saved snapshot.
type Metadata struct {
	ID         string             `json:"id"`
	Attractor  string             `json:"attractor"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	Integrator string             `json:"integrator"`
	Particles  int                `json:"particles"`
	Trail      int                `json:"trail"`
	Steps      int64              `json:"steps"`
	Reseeds    int64              `json:"reseeds"`
	Transform  sim.TransformState `json:"transform"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Snapshot is a detached copy of one frame's render buffers.
type Snapshot struct {
	Metadata  Metadata  `json:"metadata"`
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Alpha     []float32 `json:"alpha"`
	Size      []float32 `json:"size"`
}

// NewSnapshot copies fr so it stays valid after the next tick.
func NewSnapshot(fr sim.Frame, integrator string, seed uint64, metrics map[string]float64) *Snapshot {
	trail := max(fr.Trail, 1)
	return &Snapshot{
		Metadata: Metadata{
			Attractor:  fr.Attractor,
			Timestamp:  time.Now(),
			Seed:       seed,
			Integrator: integrator,
			Particles:  fr.Vertices / trail,
			Trail:      fr.Trail,
			Steps:      fr.Stats.Steps,
			Reseeds:    fr.Stats.Reseeds,
			Transform:  fr.Transform,
			Metrics:    metrics,
		},
		Positions: append([]float32(nil), fr.Positions...),
		Colors:    append([]float32(nil), fr.Colors...),
		Alpha:     append([]float32(nil), fr.Alpha...),
		Size:      append([]float32(nil), fr.Size...),
	}
}

func (s *Snapshot) Vertices() int { return len(s.Alpha) }

// Save writes metadata.json and vertices.csv under a new directory and
// returns its ID.
func (s *Store) Save(snap *Snapshot) (string, error) {
	id := fmt.Sprintf("%s_%d", strings.ToLower(snap.Metadata.Attractor), time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	snap.Metadata.ID = id

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap.Metadata); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, verticesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, snap); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	snaps := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSnapshot reads back both files of a saved snapshot.
func (s *Store) LoadSnapshot(id string) (*Snapshot, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, verticesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header", verticesFile)
	}

	n := len(records) - 1
	snap := &Snapshot{
		Metadata:  *meta,
		Positions: make([]float32, 0, n*3),
		Colors:    make([]float32, 0, n*3),
		Alpha:     make([]float32, 0, n),
		Size:      make([]float32, 0, n),
	}
	for i, record := range records[1:] {
		vals := make([]float32, 0, len(vertexHeader)-2)
		for _, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", verticesFile, i+2, err)
			}
			vals = append(vals, float32(v))
		}
		snap.Positions = append(snap.Positions, vals[0:3]...)
		snap.Colors = append(snap.Colors, vals[3:6]...)
		snap.Alpha = append(snap.Alpha, vals[6])
		snap.Size = append(snap.Size, vals[7])
	}
	return snap, nil
}
