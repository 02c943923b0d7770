package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"

	"github.com/san-kum/algoscope/internal/registry"
	"github.com/san-kum/algoscope/internal/trace"
)

const (
	metaFile  = "metadata.json"
	traceFile = "trace.json.lz4"
)

// Store persists finished runs under a data directory, one subdirectory
// per run: metadata as plain JSON, the trace as lz4-compressed JSON.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMeta struct {
	ID        string         `json:"id"`
	Algorithm string         `json:"algorithm"`
	Family    string         `json:"family"`
	Input     registry.Input `json:"input"`
	Timestamp time.Time      `json:"timestamp"`
	Steps     int            `json:"steps"`
	Counters  trace.Counters `json:"counters"`

	// Bytes is the on-disk size of the compressed trace, filled by List.
	Bytes int64 `json:"-"`
}

func (s *Store) Save(algorithm string, family string, in registry.Input, tr *trace.Trace) (string, error) {
	runID := fmt.Sprintf("%s-%s", algorithm, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMeta{
		ID:        runID,
		Algorithm: algorithm,
		Family:    family,
		Input:     in,
		Timestamp: time.Now(),
		Steps:     tr.Len(),
		Counters:  tr.FinalCounters(),
	}

	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metaFile), metaBytes, 0644); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	zw := lz4.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(tr); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMeta, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMeta{}, nil
		}
		return nil, err
	}

	runs := make([]RunMeta, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(entry.Name())
		if err != nil {
			continue
		}
		if fi, err := os.Stat(filepath.Join(s.baseDir, entry.Name(), traceFile)); err == nil {
			meta.Bytes = fi.Size()
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadMeta(runID string) (*RunMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return nil, err
	}
	tr := &trace.Trace{}
	if err := json.Unmarshal(data, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *Store) Delete(runID string) error {
	if strings.ContainsAny(runID, "/\\") || runID == "" || runID == "." || runID == ".." {
		return fmt.Errorf("invalid run id: %q", runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
