// Package jobs implements the asynchronous job manager (C5): it registers
// conversion jobs, runs them off the request path on a bounded worker
// pool, tracks state transitions, and exposes consistent polling snapshots.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adverant/nexus/pdf2md/internal/converter"
	"github.com/adverant/nexus/pdf2md/internal/errors"
	"github.com/adverant/nexus/pdf2md/internal/filestore"
	"github.com/adverant/nexus/pdf2md/internal/logging"
	"github.com/adverant/nexus/pdf2md/internal/metrics"
)

var log = logging.NewLogger("jobs")

// State is a Job's lifecycle state. Terminal states never transition
// further.
type State string

const (
	Pending    State = "pending"
	Processing State = "processing"
	Completed  State = "completed"
	Failed     State = "failed"
)

// Result mirrors ConversionResult, scoped to the fields the wire surface
// reports back to a poller.
type Result struct {
	FileID            string
	Markdown          string
	MarkdownPath      string
	ProcessingSeconds float64
	PagesProcessed    int
	TablesFound       int
}

// Job is a snapshot-safe record of one conversion's progress. Callers only
// ever observe copies returned by Get; the owning worker is the sole
// mutator of the live record.
type Job struct {
	ID         string
	FileID     string
	State      State
	Progress   int
	StartedAt  *time.Time
	FinishedAt *time.Time
	Result     *Result
	Error      string
}

// pageConverter is the C4 contract the manager drives each job through. The
// real implementation is *converter.Converter; tests substitute a fake so
// job lifecycle and registry semantics can be exercised without a PDF
// engine.
type pageConverter interface {
	Convert(path string, opts converter.Options) (*converter.Result, error)
}

// Manager is the in-memory job registry plus worker dispatch.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	sem     chan struct{}
	store   *filestore.Store
	conv    pageConverter
	batch   int
	minCols int
}

// Config bundles the converter-facing options the manager applies to
// every job it submits.
type Config struct {
	BatchSize         int
	TableMinColumns   int
	MaxConcurrentJobs int
}

// New constructs a Manager. store resolves fileId -> path for Submit; conv
// drives the actual page-batched conversion.
func New(store *filestore.Store, conv pageConverter, cfg Config) *Manager {
	maxJobs := cfg.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 8
	}
	return &Manager{
		jobs:    make(map[string]*Job),
		sem:     make(chan struct{}, maxJobs),
		store:   store,
		conv:    conv,
		batch:   cfg.BatchSize,
		minCols: cfg.TableMinColumns,
	}
}

// Submit validates fileId against the FileStore, registers a pending Job,
// and dispatches its worker. It never blocks waiting for a free worker
// slot — dispatch happens on a goroutine that acquires the slot itself, so
// Submit always returns immediately with the new job id.
func (m *Manager) Submit(fileID string) (string, error) {
	meta, err := m.store.Info(fileID)
	if err != nil {
		return "", err
	}
	if meta.FileType != "pdf" {
		return "", errors.NewInvalidArgumentError("file is not a PDF")
	}

	job := &Job{
		ID:       uuid.NewString(),
		FileID:   fileID,
		State:    Pending,
		Progress: 0,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.runWorker(job, meta.StoredPath)

	return job.ID, nil
}

// Get returns a consistent snapshot of jobID's current state.
func (m *Manager) Get(jobID string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return Job{}, errors.NewNotFoundError("job not found: "+jobID, nil)
	}
	return *job, nil
}

func (m *Manager) runWorker(job *Job, path string) {
	m.sem <- struct{}{}
	metrics.JobsInFlight.Inc()
	defer func() {
		<-m.sem
		metrics.JobsInFlight.Dec()
	}()

	now := time.Now()
	m.mu.Lock()
	job.State = Processing
	job.StartedAt = &now
	m.mu.Unlock()

	onProgress := func(percent int) {
		if percent > 99 {
			percent = 99
		}
		m.mu.Lock()
		if percent > job.Progress {
			job.Progress = percent
		}
		m.mu.Unlock()
	}

	result, err := m.conv.Convert(path, converter.Options{
		BatchSize:       m.batch,
		TableMinColumns: m.minCols,
		OnProgress:      onProgress,
	})

	finished := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	job.FinishedAt = &finished
	job.Progress = 100

	if err != nil {
		job.State = Failed
		job.Error = err.Error()
		metrics.JobsFailed.Inc()
		log.Warn("job failed", "job", job.ID, "file", job.FileID, "error", err.Error())
		return
	}

	job.State = Completed
	job.Result = &Result{
		FileID:            job.FileID,
		Markdown:          result.Markdown,
		MarkdownPath:      result.MarkdownPath,
		ProcessingSeconds: result.ProcessingSeconds,
		PagesProcessed:    result.PagesProcessed,
		TablesFound:       result.TablesFound,
	}
	metrics.PagesProcessed.Add(float64(result.PagesProcessed))
	metrics.TablesFound.Add(float64(result.TablesFound))
	log.Info("job completed", "job", job.ID, "file", job.FileID, "pages", result.PagesProcessed)
}
