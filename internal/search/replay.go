package search

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/magefree/mage-reach/internal/game"
)

const replayVersion = 1

// ErrNoPath is returned when saving the replay of a run that failed.
var ErrNoPath = errors.New("outcome has no path to replay")

// ReplayStep is the recorded form of one step of a winning path.
type ReplayStep struct {
	Index    int
	Action   string
	Card     int64 // card the action was about, or zero
	Choice   string
	Pool     string
	Checksum string
	Key      string
}

// Replay is the winning path of a run, one step after another.
type Replay struct {
	RunID        string
	Steps        []*ReplayStep
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay for a run.
func NewReplay(runID string) *Replay {
	return &Replay{
		RunID: runID,
		Steps: make([]*ReplayStep, 0),
	}
}

// ReplayFromOutcome records the path of a successful run, starting with the
// initial state as step 0.
func ReplayFromOutcome(o *Outcome) (*Replay, error) {
	if !o.Succeeded() {
		return nil, ErrNoPath
	}
	r := NewReplay(o.RunID)
	first := o.Found
	for first.Parent != nil {
		first = first.Parent
	}
	r.Record("start", 0, nil, first.State)
	for _, step := range o.Steps() {
		r.Record(game.Describe(step.Action), subject(step.Action), step.Choice, step.State)
	}
	return r, nil
}

func subject(a game.Action) game.ObjectID {
	if sub, ok := a.(game.Subject); ok {
		return sub.Subject()
	}
	return 0
}

// Record appends a step.
func (r *Replay) Record(action string, card game.ObjectID, choice game.Binding, s *game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := &ReplayStep{
		Index:    len(r.Steps),
		Action:   action,
		Card:     int64(card),
		Pool:     s.Pool().String(),
		Checksum: s.Checksum(),
		Key:      s.Key(),
	}
	if len(choice) > 0 {
		step.Choice = choice.String()
	}
	r.Steps = append(r.Steps, step)
}

// Start rewinds to the first step.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the current step and advances, or nil at the end.
func (r *Replay) Next() *ReplayStep {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.Steps) {
		step := r.Steps[r.CurrentIndex]
		r.CurrentIndex++
		return step
	}
	return nil
}

// Previous steps back and returns that step, or nil at the start.
func (r *Replay) Previous() *ReplayStep {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.Steps[r.CurrentIndex]
	}
	return nil
}

// Size returns the number of recorded steps.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.Steps)
}

// At returns the step at index, or nil.
func (r *Replay) At(index int) *ReplayStep {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.Steps) {
		return r.Steps[index]
	}
	return nil
}

// ReplayPath is the file a replay of runID is stored in.
func ReplayPath(directory, runID string) string {
	return filepath.Join(directory, fmt.Sprintf("%s.replay", runID))
}

// SaveToFile writes the replay as gzip-compressed gob into directory and
// returns the file name.
func (r *Replay) SaveToFile(directory string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := ReplayPath(directory, r.RunID)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gzipWriter)

	metadata := replayMetadata{
		RunID:     r.RunID,
		Timestamp: time.Now(),
		Version:   replayVersion,
		StepCount: len(r.Steps),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i, step := range r.Steps {
		if err := encoder.Encode(step); err != nil {
			return "", fmt.Errorf("failed to encode step %d: %w", i, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to flush replay: %w", err)
	}
	return filename, nil
}

// LoadReplayFromFile reads the replay of runID from directory.
func LoadReplayFromFile(directory, runID string) (*Replay, error) {
	file, err := os.Open(ReplayPath(directory, runID))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := NewReplay(metadata.RunID)
	for i := 0; i < metadata.StepCount; i++ {
		var step ReplayStep
		if err := decoder.Decode(&step); err != nil {
			return nil, fmt.Errorf("failed to decode step %d: %w", i, err)
		}
		replay.Steps = append(replay.Steps, &step)
	}
	return replay, nil
}

type replayMetadata struct {
	RunID     string
	Timestamp time.Time
	Version   int
	StepCount int
}

// SaveReplay writes the winning path of o into directory.
func SaveReplay(logger *zap.Logger, directory string, o *Outcome) (string, error) {
	replay, err := ReplayFromOutcome(o)
	if err != nil {
		return "", err
	}
	filename, err := replay.SaveToFile(directory)
	if err != nil {
		return "", fmt.Errorf("failed to save replay: %w", err)
	}
	if logger != nil {
		logger.Info("saved replay to disk",
			zap.String("run_id", o.RunID),
			zap.Int("step_count", replay.Size()),
			zap.String("file", filename),
		)
	}
	return filename, nil
}

// LoadReplay reads a replay written by SaveReplay.
func LoadReplay(logger *zap.Logger, directory, runID string) (*Replay, error) {
	replay, err := LoadReplayFromFile(directory, runID)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("loaded replay from disk",
			zap.String("run_id", runID),
			zap.Int("step_count", replay.Size()),
		)
	}
	return replay, nil
}
