package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store tracks pipeline runs as plain directories under a root, one
// directory per run keyed by a fresh UUID. Everything inside a run is an
// ordinary file.
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Run is one pipeline execution collecting parameters, metrics and
// artifact files. Close writes the collected state out.
type Run struct {
	ID      string
	Name    string
	Dir     string
	started time.Time
	params  map[string]interface{}
	metrics map[string]float64
}

// NewRun creates the run directory and returns the handle for logging into
// it.
func (s *Store) NewRun(name string) (*Run, error) {
	run := &Run{
		ID:      uuid.New().String(),
		Name:    name,
		started: time.Now().UTC(),
		params:  map[string]interface{}{},
		metrics: map[string]float64{},
	}
	run.Dir = filepath.Join(s.Root, "runs", run.ID)
	if err := os.MkdirAll(run.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating run directory %s: %w", run.Dir, err)
	}
	log.Info().Str("run", run.ID).Str("dir", run.Dir).Msg("started run")
	return run, nil
}

// LogParam records a run parameter. Parameters are written once at Close.
func (r *Run) LogParam(key string, value interface{}) {
	r.params[key] = value
}

// LogMetric records a named metric value.
func (r *Run) LogMetric(key string, value float64) {
	r.metrics[key] = value
	log.Info().Str("run", r.ID).Str("metric", key).Float64("value", value).Msg("logged metric")
}

// SaveJSON writes v as an indented JSON artifact inside the run directory.
func (r *Run) SaveJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding artifact %s: %w", name, err)
	}
	return r.saveFile(name, append(data, '\n'))
}

// SaveText writes a plain-text artifact inside the run directory.
func (r *Run) SaveText(name, text string) error {
	return r.saveFile(name, []byte(text))
}

// Close flushes parameters, metrics and run metadata to disk. The run
// handle must not be used afterwards.
func (r *Run) Close() error {
	if err := r.SaveJSON("params.json", r.params); err != nil {
		return err
	}
	if err := r.SaveJSON("metrics.json", r.metrics); err != nil {
		return err
	}
	meta := map[string]string{
		"run_id":      r.ID,
		"name":        r.Name,
		"started_at":  r.started.Format(time.RFC3339),
		"finished_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.SaveJSON("run.json", meta); err != nil {
		return err
	}
	log.Info().Str("run", r.ID).Str("dir", r.Dir).Msg("closed run")
	return nil
}

func (r *Run) saveFile(name string, data []byte) error {
	path := filepath.Join(r.Dir, name)
	tmp, err := os.CreateTemp(r.Dir, name+".tmp*")
	if err != nil {
		return fmt.Errorf("error creating temporary file for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing artifact %s: %w", name, err)
	}
	return nil
}
