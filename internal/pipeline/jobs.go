package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// JobStatus represents the state of an indexing job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusChunking    JobStatus = "chunking"
	StatusExtracting  JobStatus = "extracting"
	StatusReconciling JobStatus = "reconciling"
	StatusWriting     JobStatus = "writing"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
)

// Job tracks the state of a single document through the pipeline.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	sourcePath string
	outputPath string
	outline    []toc.OutlineEntry
	errors     []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalChunks     int      `json:"total_chunks"`
	ChunksProcessed int      `json:"chunks_processed"`
	TitlesExtracted int      `json:"titles_extracted"`
	OutlineEntries  int      `json:"outline_entries"`
	Errors          []string `json:"errors"`
}

// NewJob creates a queued job for the PDF at sourcePath. outputPath is where
// the bookmarked PDF is written; empty means in place.
func NewJob(filename, sourcePath, outputPath string) *Job {
	now := time.Now()
	return &Job{
		ID:         uuid.NewString(),
		Filename:   filename,
		Status:     StatusQueued,
		Phase:      "queued",
		CreatedAt:  now,
		UpdatedAt:  now,
		sourcePath: sourcePath,
		outputPath: outputPath,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrChunksProcessed atomically increments chunks processed.
func (j *Job) IncrChunksProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksProcessed++
	j.UpdatedAt = time.Now()
}

// AddTitles records the number of raw candidates extracted from a chunk.
func (j *Job) AddTitles(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TitlesExtracted += n
	j.UpdatedAt = time.Now()
}

// SetTotalChunks records total chunk count.
func (j *Job) SetTotalChunks(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChunks = n
	j.UpdatedAt = time.Now()
}

// SetOutline records the reconciled outline.
func (j *Job) SetOutline(outline []toc.OutlineEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.outline = outline
	j.Progress.OutlineEntries = len(outline)
	j.UpdatedAt = time.Now()
}

// Outline returns the reconciled outline, nil until the job completes.
func (j *Job) Outline() []toc.OutlineEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.outline
}

// SourcePath returns the path of the uploaded PDF.
func (j *Job) SourcePath() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sourcePath
}

// OutputPath returns the path the bookmarked PDF is written to.
func (j *Job) OutputPath() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.outputPath != "" {
		return j.outputPath
	}
	return j.sourcePath
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			TotalChunks:     j.Progress.TotalChunks,
			ChunksProcessed: j.Progress.ChunksProcessed,
			TitlesExtracted: j.Progress.TitlesExtracted,
			OutlineEntries:  j.Progress.OutlineEntries,
			Errors:          errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
