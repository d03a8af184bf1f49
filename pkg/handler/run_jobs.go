package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/omixweb/pkg/model"
)

// RunStatus represents the lifecycle of an asynchronous pipeline run.
type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run keeps track of one asynchronous pipeline execution.
type Run struct {
	ID        string
	Status    RunStatus
	Result    *model.Result
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunManager stores run states indexed by run ID.
type RunManager struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

func NewRunManager() *RunManager {
	return &RunManager{
		runs: make(map[string]*Run),
	}
}

// NewRun registers a queued run.
func (m *RunManager) NewRun() *Run {
	run := &Run{
		ID:        uuid.New().String(),
		Status:    RunQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	m.mu.Lock()
	m.runs[run.ID] = run
	m.mu.Unlock()
	return run
}

// SetRunning marks the run as executing.
func (m *RunManager) SetRunning(runID string) {
	m.updateRun(runID, func(run *Run) {
		run.Status = RunRunning
	})
}

// CompleteRun stores the pipeline result and marks the run complete.
func (m *RunManager) CompleteRun(runID string, result *model.Result) {
	m.updateRun(runID, func(run *Run) {
		run.Status = RunCompleted
		run.Result = result
	})
}

// FailRun records a failure with a user-facing message.
func (m *RunManager) FailRun(runID string, err error) {
	m.updateRun(runID, func(run *Run) {
		run.Status = RunFailed
		run.Error = err.Error()
	})
}

// GetRun fetches a run by ID.
func (m *RunManager) GetRun(runID string) (*Run, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[runID]
	return run, ok
}

func (m *RunManager) updateRun(runID string, update func(run *Run)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return
	}

	update(run)
	run.UpdatedAt = time.Now()
}
